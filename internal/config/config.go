package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageFile    = "file"
	StorageMongoDB = "mongodb"
)

type Config struct {
	AppPort     string
	StorageType string

	// File backend.
	DataDir string

	// MongoDB backend.
	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTExpire time.Duration

	ReminderInterval time.Duration

	TrustedProxies []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:          getEnv("APP_PORT", "8080"),
		StorageType:      getEnv("STORAGE_TYPE", StorageFile),
		DataDir:          getEnv("DATA_DIR", "data"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnv("MONGO_DATABASE", "taskvault"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTExpire:        getDurationEnv("JWT_EXPIRE", 30*24*time.Hour),
		ReminderInterval: getDurationEnv("REMINDER_INTERVAL", 15*time.Minute),
		TrustedProxies:   parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
