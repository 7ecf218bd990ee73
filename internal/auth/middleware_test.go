package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "bookshelf/internal/errors"
)

// newGatewayServer wires the middleware in front of a handler that echoes
// the identity it was given, mirroring how the library routes consume it.
func newGatewayServer(svc *JWTService) *echo.Echo {
	e := echo.New()
	g := e.Group("/api/books", Middleware(svc))
	g.GET("", func(c echo.Context) error {
		id, err := CurrentUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]string{"user_id": id.String()})
	})
	return e
}

func TestMiddleware_BearerTokenAttachesIdentity(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID.String(), "alice@example.com")
	assert.NoError(t, err)

	e := newGatewayServer(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["user_id"])
}

func TestMiddleware_Rejections(t *testing.T) {
	secret := "test-secret"
	svc := NewJWTService(secret)

	token, err := svc.GenerateToken(uuid.New().String(), "alice@example.com")
	assert.NoError(t, err)

	// Flip the last signature character.
	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	// Well signed with the right key, but already expired.
	now := time.Now()
	expiredClaims := &Claims{
		UserID: uuid.New().String(),
		Email:  "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-TokenExpiry)),
			NotBefore: jwt.NewNumericDate(now.Add(-TokenExpiry)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(secret))
	assert.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "bare token without scheme", header: token},
		{name: "wrong scheme", header: "Token " + token},
		{name: "tampered signature", header: "Bearer " + tampered},
		{name: "expired token", header: "Bearer " + expired},
	}

	e := newGatewayServer(svc)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body apperrors.ErrorResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Unauthorized", body.Message)
		})
	}
}
