package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	KafkaBrokers  string
	KafkaClientID string
	EventsEnabled string

	CodeMaxAttempts string
}

func Load() *Config {
	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "offerdb"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		KafkaBrokers:  getEnv("KAFKA_BROKERS", "kafka:9092"),
		KafkaClientID: getEnv("KAFKA_CLIENT_ID", "offer-engine"),
		EventsEnabled: getEnv("EVENTS_ENABLED", "true"),

		CodeMaxAttempts: getEnv("CODE_MAX_ATTEMPTS", "5"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) MaxCodeAttempts() int {
	return parseInt(c.CodeMaxAttempts, 5)
}

func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
