package router

import (
	"foodie_express_backend/internal/handlers"
	"foodie_express_backend/internal/middleware"
	"foodie_express_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes sets up registration and login, rate limited per IP.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler, limiter *middleware.IPRateLimiter) {
	if limiter != nil {
		group.Use(middleware.RateLimitMiddleware(limiter))
	}
	group.POST("/customers/register", authHandler.RegisterCustomer)
	group.POST("/customers/login", authHandler.LoginCustomer)
	group.POST("/riders/login", authHandler.LoginRider)
	group.POST("/owners/login", authHandler.LoginOwner)
}

// SetupCatalogRoutes sets up the browse routes open to guests.
func SetupCatalogRoutes(apiGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	apiGroup.GET("/menu", menuHandler.ListMenu)
	apiGroup.GET("/menu/search", menuHandler.SearchMenu)
	apiGroup.GET("/menu/:id", menuHandler.GetMenuItem)
	apiGroup.GET("/categories", menuHandler.ListCategories)
}

// SetupCustomerRoutes sets up cart, checkout, history and profile routes.
func SetupCustomerRoutes(
	authenticatedGroup *gin.RouterGroup,
	authHandler *handlers.AuthHandler,
	cartHandler *handlers.CartHandler,
	orderHandler *handlers.OrderHandler,
	paymentHandler *handlers.PaymentHandler,
	receiptHandler *handlers.ReceiptHandler,
) {
	customer := authenticatedGroup.Group("")
	customer.Use(middleware.RoleAuthMiddleware(models.RoleCustomer))
	{
		customer.GET("/cart", cartHandler.GetCart)
		customer.DELETE("/cart", cartHandler.ClearCart)
		customer.POST("/cart/items", cartHandler.AddItem)
		customer.DELETE("/cart/items/:menuId", cartHandler.RemoveItem)

		customer.POST("/checkout", orderHandler.Checkout)
		customer.GET("/orders/history", orderHandler.OrderHistory)
		customer.GET("/orders/:id", orderHandler.GetCustomerOrder)
		customer.GET("/orders/:id/payment", orderHandler.GetCustomerOrderPayment)
		customer.GET("/receipts/:id", receiptHandler.GetCustomerReceipt)
		customer.GET("/payment-methods", paymentHandler.PaymentMethods)

		customer.GET("/me", authHandler.GetProfile)
		customer.PATCH("/me/address", authHandler.UpdateAddress)
		customer.POST("/auth/logout", authHandler.Logout)
	}
}

// SetupRiderRoutes sets up the delivery routes.
func SetupRiderRoutes(authenticatedGroup *gin.RouterGroup, deliveryHandler *handlers.DeliveryHandler) {
	deliveries := authenticatedGroup.Group("/deliveries")
	deliveries.Use(middleware.RoleAuthMiddleware(models.RoleRider))
	{
		deliveries.GET("/available", deliveryHandler.ListAvailable)
		deliveries.GET("/mine", deliveryHandler.ListMine)
		deliveries.GET("/history", deliveryHandler.History)
		deliveries.POST("/:orderId/accept", deliveryHandler.Accept)
		deliveries.POST("/:orderId/complete", deliveryHandler.Complete)
		deliveries.PATCH("/:orderId/status", deliveryHandler.UpdateStatus)
	}
}

// SetupOwnerRoutes sets up catalog management, order oversight and reports.
func SetupOwnerRoutes(
	ownerGroup *gin.RouterGroup,
	authHandler *handlers.AuthHandler,
	menuHandler *handlers.MenuHandler,
	orderHandler *handlers.OrderHandler,
	paymentHandler *handlers.PaymentHandler,
	receiptHandler *handlers.ReceiptHandler,
	reportHandler *handlers.ReportHandler,
) {
	ownerGroup.Use(middleware.RoleAuthMiddleware(models.RoleOwner))

	menuItems := ownerGroup.Group("/menu-items")
	{
		menuItems.POST("", menuHandler.CreateMenuItem)
		menuItems.GET("", menuHandler.ListMenu)
		menuItems.GET("/low-stock", menuHandler.LowStock)
		menuItems.GET("/:id", menuHandler.GetMenuItem)
		menuItems.PUT("/:id", menuHandler.UpdateMenuItem)
		menuItems.DELETE("/:id", menuHandler.DeleteMenuItem)
		menuItems.PATCH("/:id/stock", menuHandler.SetStock)
	}

	categories := ownerGroup.Group("/categories")
	{
		categories.GET("", menuHandler.ListCategories)
		categories.POST("", menuHandler.CreateCategory)
		categories.PUT("/:id", menuHandler.UpdateCategory)
		categories.DELETE("/:id", menuHandler.DeleteCategory)
	}

	ownerGroup.GET("/stock-movements", menuHandler.ListStockMovements)

	ownerGroup.GET("/orders", orderHandler.ListOrders)
	ownerGroup.GET("/orders/:id", orderHandler.GetOrder)
	ownerGroup.PATCH("/payments/:id/process", paymentHandler.ProcessPayment)

	ownerGroup.GET("/receipts", receiptHandler.ListReceipts)
	ownerGroup.GET("/receipts/search", receiptHandler.SearchReceipts)
	ownerGroup.GET("/receipts/:id", receiptHandler.GetReceipt)

	ownerGroup.GET("/customers", authHandler.ListCustomers)
	ownerGroup.GET("/riders", authHandler.ListRiders)

	reports := ownerGroup.Group("/reports")
	{
		reports.GET("/category-performance", reportHandler.CategoryPerformance)
		reports.GET("/sales-summary", reportHandler.SalesSummary)
		reports.GET("/peak-hours", reportHandler.PeakHours)
		reports.GET("/top-selling", reportHandler.TopSelling)
		reports.GET("/sales-details", reportHandler.SalesDetails)
	}
}
