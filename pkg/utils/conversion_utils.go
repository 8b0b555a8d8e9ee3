package utils

import (
	"fmt"
	"strconv"
)

// ParseID parses a database identifier from a path or query value. Zero and
// negative values are rejected.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be positive", s)
	}
	return id, nil
}

// FormatID is the inverse of ParseID, used for cache and message keys.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
