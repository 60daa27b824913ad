// config/config.go
package config

import (
	"log"
	"os"
	"time"
)

var (
	Port              string
	MongoURI          string
	MongoDatabase     string
	JWTKey            []byte
	JWTExpiration     time.Duration
	RefreshExpiration time.Duration
	SentryDSN         string
	AppEnv            string
)

func LoadConfig() {
	Port = getEnv("PORT", "8080")
	MongoURI = getEnv("MONGODB_URI", "mongodb://localhost:27017")
	MongoDatabase = getEnv("MONGODB_DATABASE", "isip")
	SentryDSN = os.Getenv("SENTRY_DSN")
	AppEnv = getEnv("APP_ENV", "development")

	JWTKey = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTKey) == 0 {
		JWTKey = []byte("secret")
	}

	JWTExpiration = parseExpiration("JWT_EXPIRE", 24*time.Hour)
	RefreshExpiration = parseExpiration("JWT_REFRESH_EXPIRE", 7*24*time.Hour)
}

func parseExpiration(key string, fallback time.Duration) time.Duration {
	expireStr := os.Getenv(key)
	if expireStr == "" {
		return fallback
	}
	// "7d" style shorthand is not a valid time.ParseDuration input
	if expireStr == "7d" {
		return 7 * 24 * time.Hour
	}
	dur, err := time.ParseDuration(expireStr)
	if err != nil {
		log.Printf("Invalid %s: %s, using %v", key, expireStr, fallback)
		return fallback
	}
	return dur
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
