package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims accessClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestParser_RoundTrip(t *testing.T) {
	userID := uuid.New()
	tenantID := uuid.New()
	token := signToken(t, "s3cret", accessClaims{
		TenantID: tenantID.String(),
		Email:    "dispatcher@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	principal, err := NewParser("s3cret").Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, tenantID, principal.TenantID)
	assert.Equal(t, "dispatcher@example.com", principal.Email)
}

func TestParser_WrongSecret(t *testing.T) {
	token := signToken(t, "s3cret", accessClaims{
		TenantID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := NewParser("other").Parse(token)
	assert.Error(t, err)
}

func TestParser_ExpiredToken(t *testing.T) {
	token := signToken(t, "s3cret", accessClaims{
		TenantID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := NewParser("s3cret").Parse(token)
	assert.Error(t, err)
}

func TestParser_MissingTenant(t *testing.T) {
	token := signToken(t, "s3cret", accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := NewParser("s3cret").Parse(token)
	assert.Error(t, err)
}
