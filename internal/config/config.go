package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// EmailConfig holds the email verification settings. It is passed by value
// into the signup/verification flow at construction time; nothing mutates
// it after startup.
type EmailConfig struct {
	VerificationEnabled bool
	MailgunAPIKey       string
	Domain              string
	From                string
	Hostname            string
}

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Email verification
	Email EmailConfig
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "shargea"),
		DBPassword: getEnv("DB_PASSWORD", "shargea"),
		DBName:     getEnv("DB_NAME", "shargea"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Email verification
		Email: EmailConfig{
			VerificationEnabled: getEnv("EMAIL_VERIFICATION_ENABLED", "false") == "true",
			MailgunAPIKey:       getEnv("MAILGUN_API_KEY", ""),
			Domain:              getEnv("EMAIL_VERIFICATION_DOMAIN", ""),
			From:                getEnv("EMAIL_VERIFICATION_FROM", "noreply@shargea.com"),
			Hostname:            getEnv("EMAIL_VERIFICATION_HOSTNAME", "localhost"),
		},
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
