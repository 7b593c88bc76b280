package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Receipt ReceiptConfig
}

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StorageConfig struct {
	// Backend selects the blob store: "sqlite" (default) or "redis".
	Backend    string
	SQLitePath string
}

type RedisConfig struct {
	Addr     string
	PoolSize int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	Enabled bool
}

type ReceiptConfig struct {
	// Secret encrypts the QR receipt payload. Empty disables receipts.
	Secret string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         getEnv("ADDR", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Storage: StorageConfig{
			Backend:    getEnv("STORAGE_BACKEND", "sqlite"),
			SQLitePath: getEnv("SQLITE_PATH", "juicepos.db"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			PoolSize: getEnvInt("REDIS_POOL_SIZE", 10),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC_SALES", "juicepos.sale.recorded"),
			Enabled: getEnvBool("KAFKA_ENABLED", false),
		},
		Receipt: ReceiptConfig{
			Secret: getEnv("RECEIPT_SECRET", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
