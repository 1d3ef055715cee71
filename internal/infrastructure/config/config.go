package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ProviderConfig holds connection settings for one external data provider.
// An empty BaseURL selects the deterministic stub adapter.
type ProviderConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// KafkaConfig holds decision event stream settings. An empty broker list
// disables publishing to Kafka (events are logged instead).
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RedisConfig holds provider payload cache settings. An empty address
// disables caching.
type RedisConfig struct {
	Addr       string
	TTLSeconds int
}

// Config is the process configuration, read once at startup.
type Config struct {
	HTTPPort    int
	ServiceName string

	LogLevel  string
	LogFormat string

	// TablesPath optionally overrides the built-in reference tables with a
	// YAML file.
	TablesPath string

	DebtBureau   ProviderConfig
	PersonReg    ProviderConfig
	CreditBureau ProviderConfig

	Kafka KafkaConfig
	Redis RedisConfig
}

// Load reads configuration from the environment with defaults.
func Load() Config {
	return Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		ServiceName: "credit-decision-service",
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		TablesPath:  getEnv("TABLES_PATH", ""),
		DebtBureau: ProviderConfig{
			BaseURL:        getEnv("DEBT_BUREAU_URL", ""),
			TimeoutSeconds: getEnvInt("DEBT_BUREAU_TIMEOUT_SECONDS", 10),
		},
		PersonReg: ProviderConfig{
			BaseURL:        getEnv("PERSON_REGISTRY_URL", ""),
			TimeoutSeconds: getEnvInt("PERSON_REGISTRY_TIMEOUT_SECONDS", 10),
		},
		CreditBureau: ProviderConfig{
			BaseURL:        getEnv("CREDIT_BUREAU_URL", ""),
			TimeoutSeconds: getEnvInt("CREDIT_BUREAU_TIMEOUT_SECONDS", 10),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "credit.decisions"),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			TTLSeconds: getEnvInt("REDIS_TTL_SECONDS", 300),
		},
	}
}

// HTTPAddr returns the listen address of the HTTP server.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
