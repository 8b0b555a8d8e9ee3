package models

import "github.com/shopspring/decimal"

// CartLine is a pending selection. Price and name are snapshotted when the
// line is added and are not refreshed if the catalog changes afterwards.
type CartLine struct {
	MenuID    int64           `json:"menu_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Name      string          `json:"name"`
}

// Subtotal is quantity x unit price.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds one customer's uncommitted selections. Lines are never merged:
// adding the same menu item twice yields two lines.
type Cart struct {
	CustomerID int64      `json:"customer_id"`
	Lines      []CartLine `json:"lines"`
}

// NewCart returns an empty cart owned by customerID.
func NewCart(customerID int64) *Cart {
	return &Cart{CustomerID: customerID, Lines: []CartLine{}}
}

// Add appends a line. Stock validation happens before this is called.
func (c *Cart) Add(line CartLine) {
	c.Lines = append(c.Lines, line)
}

// Remove drops the first line for menuID and reports whether one was found.
func (c *Cart) Remove(menuID int64) bool {
	for i, line := range c.Lines {
		if line.MenuID == menuID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// Total is the sum of every line subtotal.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Size() int {
	return len(c.Lines)
}
