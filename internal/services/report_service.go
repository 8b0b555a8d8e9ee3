package services

import (
	"time"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// ProfitMarginPercent is the fixed margin shown on the sales summary.
var ProfitMarginPercent = decimal.NewFromInt(25)

// DefaultTopSellingLimit is used when no limit is given.
const DefaultTopSellingLimit = 10

// ReportService computes owner analytics.
type ReportService interface {
	CategoryPerformance() (*models.CategoryPerformance, error)
	SalesSummary(now time.Time) (*models.SalesSummary, error)
	PeakHours() ([]models.PeakHour, error)
	TopSelling(limit int) ([]models.TopSellingItem, error)
	SalesDetails() (*models.SalesDetails, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(rr repositories.ReportRepository) ReportService {
	return &reportService{reportRepo: rr}
}

func (s *reportService) CategoryPerformance() (*models.CategoryPerformance, error) {
	rows, err := s.reportRepo.CategorySales()
	if err != nil {
		return nil, storageError("category performance", err)
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.TotalSales)
	}
	return &models.CategoryPerformance{Rows: rows, GrandTotal: total}, nil
}

// SalesSummary covers payments dated from the first day of now's month up to
// the start of the next month.
func (s *reportService) SalesSummary(now time.Time) (*models.SalesSummary, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	monthly, err := s.reportRepo.PaymentTotalBetween(monthStart, monthEnd)
	if err != nil {
		return nil, storageError("monthly sales", err)
	}
	inventory, err := s.reportRepo.InventoryValue()
	if err != nil {
		return nil, storageError("inventory value", err)
	}
	return &models.SalesSummary{
		MonthlySales:   monthly,
		InventoryValue: inventory,
		ProfitMargin:   ProfitMarginPercent,
	}, nil
}

func (s *reportService) PeakHours() ([]models.PeakHour, error) {
	hours, err := s.reportRepo.OrdersPerHour()
	if err != nil {
		return nil, storageError("peak hours", err)
	}
	return hours, nil
}

func (s *reportService) TopSelling(limit int) ([]models.TopSellingItem, error) {
	if limit <= 0 {
		limit = DefaultTopSellingLimit
	}
	items, err := s.reportRepo.TopSelling(limit)
	if err != nil {
		return nil, storageError("top selling", err)
	}
	return items, nil
}

func (s *reportService) SalesDetails() (*models.SalesDetails, error) {
	details, err := s.reportRepo.SalesDetails()
	if err != nil {
		return nil, storageError("sales details", err)
	}
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.Amount)
	}
	return &models.SalesDetails{Payments: details, Total: total}, nil
}
