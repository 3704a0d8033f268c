package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	SecretKey      string
	DatabaseURL    string
	RapidAPIKey    string
	CatalogBaseURL string
	CatalogHost    string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	SessionTTL     time.Duration
	CookieSecure   bool
	CSRFEnabled    bool
	LogLevel       string
	ResetDB        bool
	SwaggerHost    string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		SecretKey:      getEnv("MY_APP_SECRET_KEY", "default-secret-key"),
		DatabaseURL:    getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/sneaker_app?charset=utf8mb4&parseTime=True&loc=Local"),
		RapidAPIKey:    lookupEnv("RAPIDAPI_KEY", "your-default-api-key"),
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "https://v1-sneakers.p.rapidapi.com/v1/sneakers"),
		CatalogHost:    getEnv("CATALOG_HOST", "v1-sneakers.p.rapidapi.com"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_HOURS", 168)) * time.Hour,
		CookieSecure:   getEnvBool("COOKIE_SECURE", false),
		CSRFEnabled:    getEnvBool("CSRF_ENABLED", true),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ResetDB:        getEnvBool("RESET_DB", false),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// lookupEnv keeps an explicitly empty value, so RAPIDAPI_KEY= disables the catalog.
func lookupEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
