package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	appErrors "github.com/johnquangdev/minutemind/errors"
	usecaseErrors "github.com/johnquangdev/minutemind/internal/usecase/errors"
	"github.com/johnquangdev/minutemind/pkg/jwt"
)

// TokenValidator checks an operator token.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that validates the operator JWT and
// sets "claims" (*jwt.Claims) and "username" into the Echo context.
func EchoAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" {
				return appErrors.ErrUnauthenticated()
			}

			claims, err := validator.ValidateToken(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, usecaseErrors.ErrTokenExpired) {
					return appErrors.ErrTokenExpired()
				}
				return appErrors.ErrInvalidToken()
			}

			c.Set("claims", claims)
			c.Set("username", claims.Username)

			return next(c)
		}
	}
}

// ExtractToken reads a Bearer token from the Authorization header, falling
// back to the access_token cookie.
func ExtractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
