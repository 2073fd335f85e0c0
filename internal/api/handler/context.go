package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/importwise/landedcost/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - buyer role requires a non-empty buyer_id; without it the JWT is
//     structurally valid but cannot be scoped to a quote history, so
//     reject with 401.
func ctxClaims(c echo.Context) (role, buyerID string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	buyerID, _ = c.Get("buyer_id").(string)
	if role == domain.RoleBuyer && buyerID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing buyer identity")
	}

	return role, buyerID, nil
}
