package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SaiHarsha9992/Email-Verfication-App/internal/middleware"
	"github.com/SaiHarsha9992/Email-Verfication-App/internal/services"
)

// profileHandler returns the authenticated user's account, everything
// except the password hash.
func profileHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		acc, err := authSvc.GetProfile(c.Request().Context(), claims.AccountID)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, acc)
		case errors.Is(err, services.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
	}
}
