package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	ServerPort     string
	ServerHost     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// LLM
	LLMAPIKey    string
	LLMBaseURL   string
	LLMModelName string
	LLMTimeout   time.Duration

	// Keyword fallback rules (empty path means built-in defaults)
	LabelRulesPath string

	// Kafka (empty brokers disables event publishing)
	KafkaBrokers     []string
	LabelEventsTopic string
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8084"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 4*1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "labeler"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "labeler123"),
		PostgresDB:       getEnv("POSTGRES_DB", "labeler"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		LLMAPIKey:    getEnv("LLM_API_KEY", ""),
		LLMBaseURL:   getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModelName: getEnv("LLM_MODEL_NAME", "gpt-3.5-turbo"),
		LLMTimeout:   getDuration("LLM_TIMEOUT", 30*time.Second),

		LabelRulesPath: getEnv("LABEL_RULES_PATH", ""),

		KafkaBrokers:     getStringSliceEnv("KAFKA_BROKERS", nil),
		LabelEventsTopic: getEnv("LABEL_EVENTS_TOPIC", "label-events"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
