package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New().String()

	token, err := svc.GenerateToken(userID, "alice@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestJWTService_TamperedSignature(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken(uuid.New().String(), "alice@example.com")
	assert.NoError(t, err)

	// Flip the last character of the signature.
	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	claims, err := svc.ValidateToken(tampered)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-one").GenerateToken(uuid.New().String(), "alice@example.com")
	assert.NoError(t, err)

	claims, err := NewJWTService("secret-two").ValidateToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Expired(t *testing.T) {
	secret := "test-secret"
	svc := NewJWTService(secret)

	// Sign a token whose expiry is already in the past with the correct key.
	now := time.Now()
	claims := &Claims{
		UserID: uuid.New().String(),
		Email:  "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-TokenExpiry)),
			NotBefore: jwt.NewNumericDate(now.Add(-TokenExpiry)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)

	parsed, err := svc.ValidateToken(expired)
	assert.Nil(t, parsed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		claims, err := svc.ValidateToken(tok)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
