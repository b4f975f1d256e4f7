package auth

import (
	"testing"
	"time"

	"flexio/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{AccessSecret: "test-secret", AccessExpiry: time.Hour, Issuer: "flexio"}
}

func TestGenerateAndParse(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateAccessToken(cfg, 42, "OWNER")
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "OWNER", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseRejects(t *testing.T) {
	cfg := testConfig()

	expired := *cfg
	expired.AccessExpiry = -time.Minute
	old, err := GenerateAccessToken(&expired, 1, "MEMBER")
	require.NoError(t, err)

	other := *cfg
	other.AccessSecret = "other"
	forged, err := GenerateAccessToken(&other, 1, "ADMIN")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Role: "ADMIN"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired": old,
		"forged":  forged,
		"none":    none,
		"garbage": "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAccessToken(cfg, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
