package auth

import (
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"bookshelf/internal/errors"
)

// contextKey is where the verified identity is attached for downstream
// handlers.
const contextKey = "identity"

// Middleware builds the bearer-token gateway for protected routes. Token
// verification is delegated to the JWTService; requests with a missing,
// malformed, expired, or badly signed token are rejected with 401 before
// any handler runs. On success the verified user ID is attached to the
// request context.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		// The trailing lookup segment strips the "Bearer " scheme before the
		// token reaches ParseTokenFunc; any other scheme fails extraction.
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get("user").(*Claims)
			if !ok {
				return
			}
			if id, err := uuid.Parse(claims.UserID); err == nil {
				c.Set(contextKey, id)
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Message: "Unauthorized",
				Code:    "UNAUTHORIZED",
			})
		},
	})
}

// CurrentUserID returns the identity the gateway attached to the request.
// A missing identity means the route was wired without the gateway, or the
// token carried a malformed subject; either way the request is rejected.
func CurrentUserID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(contextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Message: "Unauthorized",
			Code:    "UNAUTHORIZED",
		})
	}
	return id, nil
}
