package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	// MongoURI selects the remote document-store backend; when empty the
	// service falls back to the in-memory local backend.
	MongoURI string
	DBName   string

	JWTSecret      string
	AccessTokenTTL time.Duration

	// BaseURL is the public address embedded in shareable customer links.
	BaseURL string

	// Staff sign-in is a static credential pair. The bcrypt hash takes
	// precedence over the plain password when both are set.
	StaffUsername     string
	StaffPassword     string
	StaffPasswordHash string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:          getEnvOrDefault("MONGO_URI", ""),
		DBName:            getEnvOrDefault("DB_NAME", "jerseyorders"),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", "dev-only-secret"),
		AccessTokenTTL:    getDurationEnv("ACCESS_TOKEN_TTL", 30, time.Minute),
		BaseURL:           getEnvOrDefault("BASE_URL", "http://localhost:8080"),
		StaffUsername:     getEnvOrDefault("STAFF_USERNAME", "admin"),
		StaffPassword:     getEnvOrDefault("STAFF_PASSWORD", "password123"),
		StaffPasswordHash: getEnvOrDefault("STAFF_PASSWORD_HASH", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
