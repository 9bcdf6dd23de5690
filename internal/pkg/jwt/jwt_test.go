package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_32_characters_min"

func TestService_GenerateAndValidate(t *testing.T) {
	svc := New(testSecret, time.Hour)

	token, err := svc.GenerateToken(42, "customer")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.CustomerID)
	assert.Equal(t, "customer", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestService_ValidateToken_WrongSecret(t *testing.T) {
	token, err := New(testSecret, time.Hour).GenerateToken(42, "customer")
	require.NoError(t, err)

	_, err = New("a-completely-different-secret-key", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestService_ValidateToken_Expired(t *testing.T) {
	svc := New(testSecret, -time.Minute)

	token, err := svc.GenerateToken(42, "customer")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestService_ValidateToken_RejectsOtherSigningMethod(t *testing.T) {
	svc := New(testSecret, time.Hour)

	// Same secret, but signed with HS384: only HS256 tokens are accepted.
	claims := Claims{
		CustomerID: 42,
		Role:       "customer",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS384, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
