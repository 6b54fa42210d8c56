package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/identity-system/internal/api/metrics"
	"github.com/storefront/identity-system/internal/core/domain"
	"github.com/storefront/identity-system/internal/core/ports"
)

// ClaimsContextKey is the echo context key the resolved claims live under.
const ClaimsContextKey = "claims"

// Auth resolves the bearer credential, validates it through the credential
// service, and injects the claims into the context. Requests without a valid
// unexpired credential never reach the next handler.
func Auth(credentials ports.CredentialService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := credentials.Validate(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrCredentialExpired) {
					metrics.CredentialValidationsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "credential expired")
				}
				metrics.CredentialValidationsTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credential")
			}
			metrics.CredentialValidationsTotal.WithLabelValues("ok").Inc()

			c.Set(ClaimsContextKey, claims)
			return next(c)
		}
	}
}
