package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/identity-system/internal/api/middleware"
	"github.com/storefront/identity-system/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware and performs
// a fast-fail check before any service call: presence of structurally valid
// claims proves the middleware ran. Services re-run the authorization guard
// themselves, so a handler wired without Auth still fails closed.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, _ := c.Get(middleware.ClaimsContextKey).(*domain.Claims)
	if !claims.Valid() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
