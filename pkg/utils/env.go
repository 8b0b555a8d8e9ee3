package utils

import (
	"os"
	"strconv"
	"time"
)

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvInt behaves like Getenv but parses the value as an int.
// Unparseable values fall back as well.
func GetenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		LogWarn("Ignoring non-numeric environment value", map[string]interface{}{"key": key, "value": value})
		return fallback
	}
	return n
}

// GetenvDuration parses values like "72h" or "30m".
func GetenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		LogWarn("Ignoring invalid duration environment value", map[string]interface{}{"key": key, "value": value})
		return fallback
	}
	return d
}
