package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// RetentionPolicy holds the retention windows and the reserved anonymous
// owner identity. It is passed explicitly into the retention engine and
// cleanup executor rather than read as ambient globals.
type RetentionPolicy struct {
	// AnonymousTTL is how long invoices owned by the anonymous sentinel
	// are kept.
	AnonymousTTL time.Duration

	// AuthenticatedTTL is how long invoices owned by any real user are kept.
	AuthenticatedTTL time.Duration

	// AnonymousUserID is the sentinel owner value marking an invoice as
	// anonymously created.
	AnonymousUserID string
}

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port          int
	MaxUploadSize int64

	// Database configuration
	PostgresURL string

	// AI extraction configuration
	GeminiAPIKey  string
	GeminiModelID string
	GeminiTimeout time.Duration

	// Object storage configuration
	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3AccessKeySecret string
	S3Bucket          string

	// Cleanup configuration
	Retention       RetentionPolicy
	CleanupSecret   string
	CleanupSchedule string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	}

	// Create and populate config
	config := &Config{
		// Server configuration
		Port:          getEnvInt("PORT", 8080),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE_BYTES", 5*1024*1024)),

		// Database configuration
		PostgresURL: os.Getenv("POSTGRES_DB_URL"),

		// AI extraction configuration
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModelID: getEnvString("GEMINI_MODEL_ID", "gemini-2.5-flash-lite"),
		GeminiTimeout: time.Duration(getEnvInt("GEMINI_TIMEOUT", 60)) * time.Second,

		// Object storage configuration
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3Region:          getEnvString("S3_REGION", "us-east-1"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3AccessKeySecret: os.Getenv("S3_ACCESS_KEY_SECRET"),
		S3Bucket:          getEnvString("S3_BUCKET", "invoice-images"),

		// Cleanup configuration
		Retention: RetentionPolicy{
			AnonymousTTL:     time.Duration(getEnvInt("ANONYMOUS_TTL_MINUTES", 15)) * time.Minute,
			AuthenticatedTTL: time.Duration(getEnvInt("AUTHENTICATED_TTL_HOURS", 24)) * time.Hour,
			AnonymousUserID:  getEnvString("ANONYMOUS_USER_ID", "00000000-0000-0000-0000-000000000000"),
		},
		CleanupSecret:   os.Getenv("CRON_SECRET"),
		CleanupSchedule: getEnvString("CLEANUP_SCHEDULE", "*/15 * * * *"),
	}

	// Validate critical configuration
	validateConfig(config)

	return config, nil
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	if config.GeminiAPIKey == "" {
		log.Println("Warning: No Gemini API key provided. Invoice extraction will fail.")
	}

	if config.PostgresURL == "" {
		log.Println("Warning: POSTGRES_DB_URL is not set. Database operations will fail.")
	}

	if config.S3Endpoint == "" || config.S3AccessKeyID == "" || config.S3AccessKeySecret == "" {
		log.Println("Warning: S3 storage is not fully configured. Image uploads will fail.")
	}

	if config.CleanupSecret == "" {
		log.Println("Warning: CRON_SECRET is not set. The cleanup endpoint will reject all requests.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}
