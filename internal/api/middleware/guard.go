package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/identity-system/internal/core/domain"
	"github.com/storefront/identity-system/internal/core/ports"
)

// Require enforces a capability against the claims resolved by Auth. The
// guard's decision is total, so a request with absent or malformed claims
// fails closed instead of crashing.
func Require(guard ports.AuthorizationGuard, capability domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(ClaimsContextKey).(*domain.Claims)
			if err := guard.Authorize(claims, capability); err != nil {
				return err
			}
			return next(c)
		}
	}
}
