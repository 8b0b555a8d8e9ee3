package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	t.Setenv("FOODIE_TEST_VALUE", "")
	assert.Equal(t, "fallback", Getenv("FOODIE_TEST_VALUE", "fallback"))

	t.Setenv("FOODIE_TEST_VALUE", "set")
	assert.Equal(t, "set", Getenv("FOODIE_TEST_VALUE", "fallback"))
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("FOODIE_TEST_INT", "25")
	assert.Equal(t, 25, GetenvInt("FOODIE_TEST_INT", 10))

	t.Setenv("FOODIE_TEST_INT", "many")
	assert.Equal(t, 10, GetenvInt("FOODIE_TEST_INT", 10))
}

func TestGetenvDuration(t *testing.T) {
	t.Setenv("FOODIE_TEST_TTL", "30m")
	assert.Equal(t, 30*time.Minute, GetenvDuration("FOODIE_TEST_TTL", time.Hour))

	t.Setenv("FOODIE_TEST_TTL", "soon")
	assert.Equal(t, time.Hour, GetenvDuration("FOODIE_TEST_TTL", time.Hour))
}
