package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types

	"github.com/joho/godotenv" // godotenv loads a local .env file during development
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The three JWT secrets are deliberately separate:
// an access token must never validate as a refresh or activation token.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	Port             string // HTTP port to listen on
	DBUser           string // database username
	DBPass           string // database password (optional)
	DBHost           string // database host address
	DBPort           string // database port number
	DBName           string // database name
	AccessSecret     string // secret used to sign access tokens
	RefreshSecret    string // secret used to sign refresh tokens
	ActivationSecret string // secret used to sign account activation tokens
	BcryptCost       int    // bcrypt cost for password hashing
	StripeSecretKey  string // Stripe API key
	StripeHookSecret string // Stripe webhook endpoint signing secret
	PriceCents       int    // subscription price charged through Stripe
	Currency         string // ISO currency code for payment intents
	SMTPHost         string // SMTP relay host for outbound mail
	SMTPPort         int    // SMTP relay port
	SMTPUser         string // SMTP username (optional)
	SMTPPass         string // SMTP password (optional)
	MailFrom         string // From address on outbound mail
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is merged in first when
// present.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // absence of a .env file is fine outside development

	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		AccessSecret:     must("JWT_ACCESS_SECRET"),
		RefreshSecret:    must("JWT_REFRESH_SECRET"),
		ActivationSecret: must("JWT_ACTIVATION_SECRET"),
		BcryptCost:       intOr("BCRYPT_COST", 12),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		StripeHookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		PriceCents:       intOr("SUBSCRIPTION_PRICE_CENTS", 500),
		Currency:         strOr("SUBSCRIPTION_CURRENCY", "eur"),
		SMTPHost:         strOr("SMTP_HOST", "localhost"),
		SMTPPort:         intOr("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		MailFrom:         strOr("MAIL_FROM", "no-reply@webservice.local"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// strOr returns the value of an optional environment variable or a default.
func strOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intOr is like strOr but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func intOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
