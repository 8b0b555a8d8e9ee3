package router

import (
	"database/sql"

	"foodie_express_backend/internal/handlers"
	"foodie_express_backend/internal/middleware"
	"foodie_express_backend/internal/repositories"
	"foodie_express_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Dependencies are the infrastructure pieces built in main.
type Dependencies struct {
	DB           *sql.DB
	CartStore    services.CartStore
	Idempotency  services.IdempotencyGuard
	Publisher    services.EventPublisher
	LoginLimiter *middleware.IPRateLimiter
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies) {
	db := deps.DB

	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	movementRepo := repositories.NewStockMovementRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	deliveryRepo := repositories.NewDeliveryRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	receiptRepo := repositories.NewReceiptRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, customerRepo, db)
	menuService := services.NewMenuService(menuRepo, movementRepo, db)
	cartService := services.NewCartService(menuRepo, deps.CartStore)
	orderService := services.NewOrderService(orderRepo, menuRepo, movementRepo, db)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, deps.Publisher, db)
	receiptService := services.NewReceiptService(receiptRepo, orderRepo, customerRepo, db)
	checkoutService := services.NewCheckoutService(deps.CartStore, orderService, paymentService, receiptService, deps.Idempotency, deps.Publisher)
	deliveryService := services.NewDeliveryService(deliveryRepo, deps.Publisher, db)
	reportService := services.NewReportService(reportRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService, cartService)
	menuHandler := handlers.NewMenuHandler(menuService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, checkoutService, paymentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	receiptHandler := handlers.NewReceiptHandler(receiptService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler, deps.LoginLimiter)
	SetupCatalogRoutes(apiV1, menuHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupCustomerRoutes(authenticated, authHandler, cartHandler, orderHandler, paymentHandler, receiptHandler)
		SetupRiderRoutes(authenticated, deliveryHandler)
		SetupOwnerRoutes(authenticated.Group("/owner"), authHandler, menuHandler, orderHandler, paymentHandler, receiptHandler, reportHandler)
	}
}
