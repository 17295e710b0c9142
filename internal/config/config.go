package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	// Database (supports sqlite, postgres, mysql)
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Tutor sessions are stored server-side; apprentice sessions are
	// short-lived tokens re-issued on every authenticated request.
	SessionDuration      time.Duration
	ApprenticeSessionTTL time.Duration

	TokenSecret string
	CSRFSecret  string

	// Apprentice login lockout
	MaxLoginAttempts int
	LoginLockout     time.Duration

	// Whether routine task completion resets at midnight. Off by default:
	// tasks behave as a recurring checklist until toggled back by hand.
	RoutineDailyReset bool

	// Email (Amazon SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	// OAuth (tutor login)
	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectBaseURL string

	// Pictogram lookup service
	PictogramBaseURL  string
	PictogramLanguage string

	Debug bool
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./buba.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		SessionDuration:      getEnvDuration("SESSION_DURATION", 24*time.Hour),
		ApprenticeSessionTTL: getEnvDuration("APPRENTICE_SESSION_TTL", 30*time.Minute),

		TokenSecret: getEnv("TOKEN_SECRET", "dev-token-secret"),
		CSRFSecret:  getEnv("CSRF_SECRET", "dev-csrf-secret"),

		MaxLoginAttempts: getEnvInt("MAX_LOGIN_ATTEMPTS", 5),
		LoginLockout:     getEnvDuration("LOGIN_LOCKOUT", 15*time.Minute),

		RoutineDailyReset: getEnvBool("ROUTINE_DAILY_RESET", false),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Buba"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", ""),

		PictogramBaseURL:  getEnv("PICTOGRAM_BASE_URL", "https://api.arasaac.org/api"),
		PictogramLanguage: getEnv("PICTOGRAM_LANGUAGE", "pt"),

		Debug: getEnvBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Warning: invalid value for %s, using default", key)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Warning: invalid value for %s, using default", key)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid value for %s, using default", key)
	}
	return defaultValue
}
