package models

import "github.com/shopspring/decimal"

// CategorySales is one row of the category performance table.
type CategorySales struct {
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalSales    decimal.Decimal `json:"total_sales"`
}

// CategoryPerformance wraps the rows with their grand total.
type CategoryPerformance struct {
	Rows       []CategorySales `json:"rows"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// SalesSummary holds the headline owner metrics.
type SalesSummary struct {
	MonthlySales   decimal.Decimal `json:"monthly_sales"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	ProfitMargin   decimal.Decimal `json:"profit_margin_percent"`
}

// PeakHour is the number of orders placed in one hour of the day (0-23).
type PeakHour struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

// TopSellingItem is one row of the best sellers table.
type TopSellingItem struct {
	Rank         int             `json:"rank"`
	MenuID       int64           `json:"menu_id"`
	MenuName     string          `json:"menu_name"`
	TimesOrdered int             `json:"times_ordered"`
	TotalSold    int             `json:"total_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SalesDetail is one payment with the paying customer's name.
type SalesDetail struct {
	PaymentID    int64           `json:"payment_id"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
}

// SalesDetails wraps payments with their total.
type SalesDetails struct {
	Payments []SalesDetail  `json:"payments"`
	Total    decimal.Decimal `json:"total"`
}
