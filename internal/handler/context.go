package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"leavedesk/internal/auth"
)

// currentClaims pulls the validated JWT claims stored by the auth middleware.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// currentUserID resolves the caller's user ID from the JWT claims.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	claims, err := currentClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := claims.UserUUID()
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return id, nil
}
