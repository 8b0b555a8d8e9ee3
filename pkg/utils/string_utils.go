package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Useful for fields that are optional and should be NULL in DB if not provided.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// FormatRM renders an amount as ringgit with two decimals, e.g. "RM31.50".
func FormatRM(amount decimal.Decimal) string {
	return "RM" + amount.StringFixed(2)
}

// LikePattern wraps a user keyword for a case-insensitive ILIKE match,
// escaping the wildcard characters it may contain.
func LikePattern(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(keyword)) + "%"
}
