package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing user_id
// means the middleware never ran, or the token carries no usable identity.
func ctxClaims(c echo.Context) (userID, email, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	email, _ = c.Get("email").(string)
	role, _ = c.Get("role").(string)
	return userID, email, role, nil
}
