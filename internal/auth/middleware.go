package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"gkk99-backend/internal/models"
)

// Context keys for storing request-scoped auth data
const (
	ContextKeyAccount = "account"
)

// RequireAuth middleware checks for a valid session token
func RequireAuth(authSvc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "authentication required",
				})
			}

			account, err := authSvc.Verify(token)
			if err != nil {
				if errors.Is(err, ErrAccountInactive) {
					return c.JSON(http.StatusForbidden, map[string]interface{}{
						"success": false,
						"error":   "account is disabled",
					})
				}
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "invalid or expired token",
				})
			}

			c.Set(ContextKeyAccount, account)
			return next(c)
		}
	}
}

// RequireMainAdmin middleware restricts a route to the main admin role.
// Must be used after RequireAuth.
func RequireMainAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account := AccountFromContext(c)
			if account == nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "authentication required",
				})
			}

			if !account.IsMainAdmin() {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success": false,
					"error":   "access denied",
				})
			}

			return next(c)
		}
	}
}

// TokenFromRequest extracts the bearer token from the Authorization header
func TokenFromRequest(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// AccountFromContext retrieves the authenticated account from the context
func AccountFromContext(c echo.Context) *models.Account {
	account, ok := c.Get(ContextKeyAccount).(*models.Account)
	if !ok {
		return nil
	}
	return account
}
