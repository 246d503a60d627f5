package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SaiHarsha9992/Email-Verfication-App/internal/services"
)

// verifyEmailHandler consumes the verification link opened from the
// email. Success renders a small page that forwards the browser to the
// configured redirect URL.
func verifyEmailHandler(authSvc *services.AuthService, redirectURL string) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Param("token")
		if token == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "token required",
			})
		}

		err := authSvc.VerifyEmail(c.Request().Context(), token)
		switch {
		case err == nil:
			return c.HTML(http.StatusOK, successPage(redirectURL))
		case errors.Is(err, services.ErrTokenExpired):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "token expired, please request a new link",
			})
		case errors.Is(err, services.ErrInvalidToken):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid token",
			})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "internal server error",
			})
		}
	}
}

func successPage(redirectURL string) string {
	refresh := ""
	if redirectURL != "" {
		refresh = fmt.Sprintf(`<meta http-equiv="refresh" content="3;url=%s" />`, redirectURL)
	}
	return fmt.Sprintf(`<html>
  <head>
    %s
    <style>
      body { font-family: Arial; text-align:center; margin-top:50px; }
    </style>
  </head>
  <body>
    <h2>Email verified successfully</h2>
    <p>Redirecting to login...</p>
  </body>
</html>`, refresh)
}
