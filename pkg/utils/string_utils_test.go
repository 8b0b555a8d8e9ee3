package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatRM(t *testing.T) {
	assert.Equal(t, "RM31.50", FormatRM(decimal.RequireFromString("31.5")))
	assert.Equal(t, "RM0.00", FormatRM(decimal.Zero))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%nasi%", LikePattern("  nasi "))
	assert.Equal(t, `%50\%\_off%`, LikePattern("50%_off"))
}

func TestNewNullString(t *testing.T) {
	assert.Nil(t, NewNullString(""))
	if s := NewNullString("x"); assert.NotNil(t, s) {
		assert.Equal(t, "x", *s)
	}
}

func TestValidators(t *testing.T) {
	assert.True(t, IsValidPhone("+60 12-345 6789"))
	assert.True(t, IsValidPhone("0123456789"))
	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone("phone-number"))

	assert.True(t, IsValidPasswordLength("secret", 6))
	assert.False(t, IsValidPasswordLength("abc", 6))

	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty(" a "))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("123")
	assert.NoError(t, err)
	assert.Equal(t, int64(123), id)
	assert.Equal(t, "123", FormatID(id))

	for _, raw := range []string{"12a", "0", "-4", ""} {
		_, err := ParseID(raw)
		assert.Error(t, err, raw)
	}
}
