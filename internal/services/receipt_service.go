package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"
	"foodie_express_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

var (
	// ServiceTaxRate is applied to the subtotal and rounded to cents.
	ServiceTaxRate = decimal.RequireFromString("0.06")
	// DeliveryFee is a flat charge per order.
	DeliveryFee = decimal.RequireFromString("5.00")
)

const receiptRuleWidth = 42

// ComputeBreakdown prices items. It has no side effects, so computing the
// same items twice gives the same result.
func ComputeBreakdown(items []models.OrderItem) models.ReceiptBreakdown {
	subtotal := itemsTotal(items)
	tax := subtotal.Mul(ServiceTaxRate).Round(2)
	return models.ReceiptBreakdown{
		Subtotal:    subtotal,
		ServiceTax:  tax,
		DeliveryFee: DeliveryFee,
		Total:       subtotal.Add(tax).Add(DeliveryFee),
	}
}

// ReceiptDocument is everything printed on a receipt.
type ReceiptDocument struct {
	OrderID         int64
	GeneratedAt     time.Time
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []models.OrderItem
	Breakdown       models.ReceiptBreakdown
	Method          models.PaymentMethod
}

// RenderReceipt lays out a plain-text receipt.
func RenderReceipt(doc ReceiptDocument) string {
	var b strings.Builder
	rule := strings.Repeat("=", receiptRuleWidth)
	thin := strings.Repeat("-", receiptRuleWidth)

	b.WriteString(rule + "\n")
	b.WriteString(centered("FOODIE EXPRESS DELIVERY SERVICE", receiptRuleWidth) + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Order ID: #%d\n", doc.OrderID)
	fmt.Fprintf(&b, "Date: %s\n", doc.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Customer: %s\n", doc.CustomerName)
	if doc.CustomerPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", doc.CustomerPhone)
	}
	if doc.CustomerAddress != "" {
		fmt.Fprintf(&b, "Address: %s\n", doc.CustomerAddress)
	}
	b.WriteString(thin + "\n")
	for i, it := range doc.Items {
		fmt.Fprintf(&b, "%d. %s x%d @ %s = %s\n",
			i+1, it.Name, it.Quantity, utils.FormatRM(it.UnitPrice), utils.FormatRM(it.Subtotal()))
	}
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", utils.FormatRM(doc.Breakdown.Subtotal))
	fmt.Fprintf(&b, "Service Tax (6%%): %s\n", utils.FormatRM(doc.Breakdown.ServiceTax))
	fmt.Fprintf(&b, "Delivery Fee: %s\n", utils.FormatRM(doc.Breakdown.DeliveryFee))
	fmt.Fprintf(&b, "GRAND TOTAL: %s\n", utils.FormatRM(doc.Breakdown.Total))
	fmt.Fprintf(&b, "Payment: %s\n", doc.Method)
	b.WriteString(rule + "\n")
	return b.String()
}

func centered(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}

// ReceiptService generates and reads receipt snapshots.
type ReceiptService interface {
	Generate(orderID, customerID int64, method models.PaymentMethod, totalHint decimal.Decimal) (*models.Receipt, error)
	GetReceipt(receiptID int64) (*models.Receipt, error)
	GetCustomerReceipt(customerID, receiptID int64) (*models.Receipt, error)
	ListReceipts() ([]models.Receipt, error)
	SearchByCustomer(name string) ([]models.Receipt, error)
}

type receiptService struct {
	receiptRepo  repositories.ReceiptRepository
	orderRepo    repositories.OrderRepository
	customerRepo repositories.CustomerRepository
	db           *sql.DB
	now          func() time.Time
}

// NewReceiptService creates a new instance of ReceiptService.
func NewReceiptService(
	rr repositories.ReceiptRepository,
	or repositories.OrderRepository,
	cr repositories.CustomerRepository,
	db *sql.DB,
) ReceiptService {
	return &receiptService{receiptRepo: rr, orderRepo: or, customerRepo: cr, db: db, now: time.Now}
}

// Generate prices the order from live menu prices, renders the text and
// stores the snapshot. totalHint is only compared with the computed
// subtotal for logging.
func (s *receiptService) Generate(orderID, customerID int64, method models.PaymentMethod, totalHint decimal.Decimal) (*models.Receipt, error) {
	customer, err := s.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		return nil, mapNotFound(err, ErrCustomerNotFound, "loading customer for receipt")
	}
	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, storageError("loading order items for receipt", err)
	}
	if len(items) == 0 {
		return nil, ErrOrderNotFound
	}

	breakdown := ComputeBreakdown(items)
	if !totalHint.IsZero() && !totalHint.Equal(breakdown.Subtotal) {
		utils.LogWarn("Receipt subtotal differs from checkout total", map[string]interface{}{
			"order_id": orderID, "hint": totalHint.StringFixed(2), "computed": breakdown.Subtotal.StringFixed(2),
		})
	}

	generatedAt := s.now()
	receipt := &models.Receipt{
		OrderID:          orderID,
		CustomerID:       customerID,
		CustomerName:     customer.Name,
		Method:           method,
		ReceiptBreakdown: breakdown,
		GeneratedAt:      generatedAt,
		Items:            items,
		Content: RenderReceipt(ReceiptDocument{
			OrderID:         orderID,
			GeneratedAt:     generatedAt,
			CustomerName:    customer.Name,
			CustomerPhone:   customer.Phone,
			CustomerAddress: customer.Address,
			Items:           items,
			Breakdown:       breakdown,
			Method:          method,
		}),
	}
	if _, err := s.receiptRepo.CreateReceipt(s.db, receipt); err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound, "saving receipt")
	}
	return receipt, nil
}

func (s *receiptService) GetReceipt(receiptID int64) (*models.Receipt, error) {
	receipt, err := s.receiptRepo.GetReceiptByID(receiptID)
	if err != nil {
		return nil, mapNotFound(err, ErrReceiptNotFound, "getting receipt")
	}
	items, err := s.orderRepo.GetOrderItemsByOrderID(receipt.OrderID)
	if err != nil {
		return nil, storageError("getting receipt items", err)
	}
	receipt.Items = items
	return receipt, nil
}

func (s *receiptService) GetCustomerReceipt(customerID, receiptID int64) (*models.Receipt, error) {
	receipt, err := s.GetReceipt(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.CustomerID != customerID {
		return nil, ErrReceiptNotFound
	}
	return receipt, nil
}

func (s *receiptService) ListReceipts() ([]models.Receipt, error) {
	receipts, err := s.receiptRepo.ListReceipts()
	if err != nil {
		return nil, storageError("listing receipts", err)
	}
	return receipts, nil
}

func (s *receiptService) SearchByCustomer(name string) ([]models.Receipt, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	receipts, err := s.receiptRepo.SearchByCustomerName(strings.TrimSpace(name))
	if err != nil {
		return nil, storageError("searching receipts", err)
	}
	return receipts, nil
}
