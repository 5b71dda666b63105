package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Oracle (vision model) Config
	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	OracleModel   string        `env:"ORACLE_MODEL" envDefault:"gpt-4o"`
	OracleTimeout time.Duration `env:"ORACLE_TIMEOUT" envDefault:"30s"`

	// Matching Config
	MatchTeamCount int `env:"MATCH_TEAM_COUNT" envDefault:"3"`

	// Notification sink Config
	NotifyWebhookURL    string        `env:"NOTIFY_WEBHOOK_URL"`
	NotifyWebhookSecret string        `env:"NOTIFY_WEBHOOK_SECRET"`
	NotifyTimeout       time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
	NotifyMaxRetries    int           `env:"NOTIFY_MAX_RETRIES" envDefault:"3"`
	NotifyBaseDelay     time.Duration `env:"NOTIFY_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OracleModel:         getEnv("ORACLE_MODEL", "gpt-4o"),
		OracleTimeout:       getEnvAsDuration("ORACLE_TIMEOUT", 30*time.Second),
		MatchTeamCount:      getEnvAsInt("MATCH_TEAM_COUNT", 3),
		NotifyWebhookURL:    os.Getenv("NOTIFY_WEBHOOK_URL"),
		NotifyWebhookSecret: os.Getenv("NOTIFY_WEBHOOK_SECRET"),
		NotifyTimeout:       getEnvAsDuration("NOTIFY_TIMEOUT", 5*time.Second),
		NotifyMaxRetries:    getEnvAsInt("NOTIFY_MAX_RETRIES", 3),
		NotifyBaseDelay:     getEnvAsDuration("NOTIFY_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.MatchTeamCount < 1 {
		return nil, fmt.Errorf("MATCH_TEAM_COUNT must be positive")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
