package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// PredefinedContact - фиксированный экстренный номер, доступный без верификации
type PredefinedContact struct {
	Name   string
	Number string
}

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// SMS Gateway Config
	SMSGatewayURL     string        `env:"SMS_GATEWAY_URL"`
	SMSGatewaySecret  string        `env:"SMS_GATEWAY_SECRET"`
	SMSGatewayTimeout time.Duration `env:"SMS_GATEWAY_TIMEOUT" envDefault:"5s"`

	// Location Provider Config
	LocationProviderURL     string        `env:"LOCATION_PROVIDER_URL"`
	LocationProviderTimeout time.Duration `env:"LOCATION_PROVIDER_TIMEOUT" envDefault:"5s"`

	// Panic Engine Config
	PanicCountdown       time.Duration `env:"PANIC_COUNTDOWN" envDefault:"3s"`
	TrackingInterval     time.Duration `env:"TRACKING_INTERVAL" envDefault:"10s"`
	TrackingMinDistanceM float64       `env:"TRACKING_MIN_DISTANCE_M" envDefault:"10"`
	DefaultAccessCode    string        `env:"DEFAULT_ACCESS_CODE" envDefault:"1234"`

	PredefinedContacts []PredefinedContact

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

const defaultPredefinedContacts = "🚑 Ambulance:104,🚓 Police:107,🌐 English Help:112"

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		HTTPPort:                getEnv("HTTP_PORT", "8080"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:               os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 getEnvAsInt("REDIS_DB", 0),
		SMSGatewayURL:           os.Getenv("SMS_GATEWAY_URL"),
		SMSGatewaySecret:        os.Getenv("SMS_GATEWAY_SECRET"),
		SMSGatewayTimeout:       getEnvAsDuration("SMS_GATEWAY_TIMEOUT", 5*time.Second),
		LocationProviderURL:     os.Getenv("LOCATION_PROVIDER_URL"),
		LocationProviderTimeout: getEnvAsDuration("LOCATION_PROVIDER_TIMEOUT", 5*time.Second),
		PanicCountdown:          getEnvAsDuration("PANIC_COUNTDOWN", 3*time.Second),
		TrackingInterval:        getEnvAsDuration("TRACKING_INTERVAL", 10*time.Second),
		TrackingMinDistanceM:    getEnvAsFloat("TRACKING_MIN_DISTANCE_M", 10),
		DefaultAccessCode:       getEnv("DEFAULT_ACCESS_CODE", "1234"),
	}

	predefined, err := parsePredefinedContacts(getEnv("PREDEFINED_CONTACTS", defaultPredefinedContacts))
	if err != nil {
		return nil, err
	}
	cfg.PredefinedContacts = predefined

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

	return cfg, nil
}

// parsePredefinedContacts разбирает строку вида "Имя:номер,Имя:номер"
func parsePredefinedContacts(raw string) ([]PredefinedContact, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	contacts := make([]PredefinedContact, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.LastIndex(part, ":")
		if idx <= 0 || idx == len(part)-1 {
			return nil, fmt.Errorf("invalid PREDEFINED_CONTACTS entry: %q", part)
		}
		contacts = append(contacts, PredefinedContact{
			Name:   strings.TrimSpace(part[:idx]),
			Number: strings.TrimSpace(part[idx+1:]),
		})
	}
	return contacts, nil
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

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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
