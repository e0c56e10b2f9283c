package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	ServerPort  string
	JWTSecret   string
	JWTExpiry   time.Duration

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string
	OpenRouterTimeout time.Duration

	CORSAllowedOrigins []string
	LogLevel           string
	GinMode            string
}

// Load reads envFile (".env" when empty) into the process environment and
// builds the configuration from it. A missing file is not an error.
func Load(envFile string) *Config {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", "kanban.db"),
		ServerPort:  getEnv("PORT", "3001"),
		JWTSecret:   getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiry:   time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 168)) * time.Hour,

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "deepseek/deepseek-chat-v3-0324:free"),
		OpenRouterTimeout: time.Duration(getEnvInt("OPENROUTER_TIMEOUT_SECONDS", 60)) * time.Second,

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		GinMode:            getEnv("GIN_MODE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		log.Printf("⚠️  Invalid value %q for %s, using %d", value, key, defaultVal)
		return defaultVal
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
