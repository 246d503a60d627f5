package main

import (
	"errors"
	"net/http"

	"github.com/SaiHarsha9992/Email-Verfication-App/internal/middleware"
	"github.com/SaiHarsha9992/Email-Verfication-App/internal/services"
	"github.com/SaiHarsha9992/Email-Verfication-App/internal/token"

	"github.com/labstack/echo/v4"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resendRequest struct {
	Email string `json:"email"`
}

func signupHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(signupRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "invalid request",
			})
		}

		err := authSvc.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
		switch {
		case err == nil:
			return c.JSON(http.StatusCreated, echo.Map{
				"message": "Verification email sent! Please check your inbox.",
			})
		case errors.Is(err, services.ErrDuplicateAccount):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "User already exists",
			})
		case errors.Is(err, services.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": err.Error(),
			})
		case errors.Is(err, services.ErrEmailDelivery):
			// Account is persisted; the user can request a resend.
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "account created but the verification email could not be sent, please use resend",
			})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "internal server error",
			})
		}
	}
}

func loginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "invalid request",
			})
		}

		user, sessionToken, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, echo.Map{
				"message": "Login successful",
				"token":   sessionToken,
				"user": echo.Map{
					"id":    user.AccountID,
					"name":  user.Name,
					"email": user.Email,
				},
			})
		case errors.Is(err, services.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{
				"message": "User not found",
			})
		case errors.Is(err, services.ErrEmailNotVerified):
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"message": "Please verify your email first",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "Invalid credentials",
			})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "internal server error",
			})
		}
	}
}

func resendHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(resendRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "invalid request",
			})
		}

		err := authSvc.ResendVerification(c.Request().Context(), req.Email)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, echo.Map{
				"message": "New verification email sent!",
			})
		case errors.Is(err, services.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{
				"message": "User not found",
			})
		case errors.Is(err, services.ErrAlreadyVerified):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "User already verified",
			})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "internal server error",
			})
		}
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, tokens *token.Manager, redirectURL string) {
	auth := g.Group("/auth")

	// public
	auth.POST("/signup", signupHandler(authSvc))
	auth.POST("/login", loginHandler(authSvc))
	auth.POST("/resend", resendHandler(authSvc))
	auth.GET("/verify/:token", verifyEmailHandler(authSvc, redirectURL))

	// authenticated
	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware(tokens))
	protected.GET("/profile", profileHandler(authSvc))
}
