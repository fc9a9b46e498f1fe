package middleware

import (
	"strings"
	"storefront/internal/apperror"
	"storefront/internal/auth"

	"github.com/labstack/echo/v4"
)

// tokenErrorKey holds the reason a presented token was not accepted.
const tokenErrorKey = "auth_token_error"

// Authenticate resolves a bearer token into an auth.Identity on the request context.
// Requests without a valid token pass through anonymously; RequireUser and RequireAdmin
// reject them later with the token problem as the message.
func Authenticate(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				c.Set(tokenErrorKey, "Invalid authorization header")
				return next(c)
			}

			identity, err := tokens.Parse(token)
			if err != nil {
				c.Set(tokenErrorKey, "Invalid or expired token")
				return next(c)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), identity)))
			c.Set("user_id", identity.UserID)

			return next(c)
		}
	}
}

func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := auth.FromContext(c.Request().Context()); !ok {
				return unauthenticated(c)
			}
			return next(c)
		}
	}
}

func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := auth.FromContext(c.Request().Context())
			if !ok {
				return unauthenticated(c)
			}
			if !identity.IsAdmin() {
				return apperror.Forbidden("Admin access required")
			}
			return next(c)
		}
	}
}

func unauthenticated(c echo.Context) error {
	if reason, ok := c.Get(tokenErrorKey).(string); ok {
		return apperror.Unauthorized("%s", reason)
	}
	return apperror.Unauthorized("Authentication required")
}
