package config

import "os"

// Config holds all environment-supplied settings, read once at startup.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// BaseURL is the public URL of this service, used to build the
	// verification links embedded in outgoing emails.
	BaseURL string
	// RedirectURL is where the verification success page sends the browser.
	RedirectURL string

	ResendAPIKey string
	MailFrom     string

	UseEmailReputation bool
	AbstractAPIKey     string
}

func Load() *Config {
	return &Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "dev-secret-please-change"),

		BaseURL:     getenv("BASE_URL", "http://localhost:8080"),
		RedirectURL: os.Getenv("REDIRECT_URL"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     getenv("MAIL_FROM", "VerifyApp<onboarding@resend.dev>"),

		UseEmailReputation: os.Getenv("USE_EMAIL_REPUTATION") == "true",
		AbstractAPIKey:     os.Getenv("ABSTRACT_EMAIL_API_KEY"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
