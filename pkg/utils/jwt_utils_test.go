package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signClaims(t *testing.T, secret, issuer string, expires time.Time) string {
	t.Helper()
	claims := &Claims{
		UserID:   1,
		Username: "someone",
		Role:     "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			Issuer:    issuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestGenerateAndValidateToken(t *testing.T) {
	ConfigureJWT(testSecret, time.Hour)

	token, err := GenerateAccessToken(42, "Aisyah", "customer")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Aisyah", claims.Username)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, time.Hour, AccessTokenTTL())
}

func TestValidateToken_Rejects(t *testing.T) {
	ConfigureJWT(testSecret, time.Hour)

	cases := map[string]string{
		"wrong secret": signClaims(t, "other-secret", tokenIssuer, time.Now().Add(time.Hour)),
		"wrong issuer": signClaims(t, testSecret, "someone-else", time.Now().Add(time.Hour)),
		"expired":      signClaims(t, testSecret, tokenIssuer, time.Now().Add(-time.Minute)),
		"garbage":      "not-a-token",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateToken(token)
			assert.Error(t, err)
		})
	}
}
