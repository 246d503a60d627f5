package main

import (
	"context"
	"log"

	"github.com/SaiHarsha9992/Email-Verfication-App/external/abstractapi"
	"github.com/SaiHarsha9992/Email-Verfication-App/external/resend"

	"github.com/SaiHarsha9992/Email-Verfication-App/internal/config"
	"github.com/SaiHarsha9992/Email-Verfication-App/internal/db"
	"github.com/SaiHarsha9992/Email-Verfication-App/internal/repository"
	"github.com/SaiHarsha9992/Email-Verfication-App/internal/services"
	"github.com/SaiHarsha9992/Email-Verfication-App/internal/token"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatal(err)
	}

	// ======================
	// EXTERNALS
	// ======================
	var emailValidator services.EmailValidator
	if cfg.UseEmailReputation {
		emailValidator, err = abstractapi.NewAbstractReputationValidator(cfg.AbstractAPIKey)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		emailValidator = services.NewLocalValidator()
	}

	mailer, err := resend.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// REPOSITORIES
	// ======================
	accountRepo := repository.NewAccountRepository(pool)

	// ======================
	// SERVICES
	// ======================
	tokens := token.NewManager(cfg.JWTSecret)
	authSvc := services.NewAuthService(accountRepo, emailValidator, mailer, tokens, cfg.BaseURL)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc, tokens, cfg.RedirectURL)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
