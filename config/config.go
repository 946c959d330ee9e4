package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	AppEnv      string
	DatabaseURL string

	// Sessions
	JWTSecret       string
	SessionTTLHours int

	// Identity providers
	FirebaseProjectID string
	GoogleClientID    string
	// Legacy Google sign-in path. Off unless explicitly enabled.
	GoogleAuthEnabled bool

	SeedData bool
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/friendapp?charset=utf8mb4&parseTime=True&loc=Local"),

		JWTSecret:       getEnv("JWT_SECRET", "your-secret-key"),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 168),

		FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
		GoogleClientID:    getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleAuthEnabled: getEnvBool("GOOGLE_AUTH_ENABLED", false),

		SeedData: getEnvBool("SEED_DATA", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
