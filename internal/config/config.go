package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerHost string
	ServerPort string

	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string

	// JWTSecret signs/verifies admin tokens. Empty disables the admin API.
	JWTSecret string

	AWSRegion          string
	AWSEndpoint        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// S3 image storage for event photos.
	S3Bucket        string
	S3PublicBaseURL string

	// SQS queue that receives booking confirmations for downstream notifiers.
	// Empty disables publishing.
	SQSBookingsQueueURL string

	// Kafka CDC topic on the events table; consumed to keep the cache fresh
	// when events change outside this service. Empty disables the consumer.
	KafkaURL         string
	EventsKafkaTopic string

	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// LoadEnv loads environment variables from a .env file when one is present.
func LoadEnv() {
	envPaths := []string{
		".env",    // Current directory
		"../.env", // One level up
	}

	for _, path := range envPaths {
		err := godotenv.Load(path)
		if err == nil {
			log.Printf("Loaded environment variables from %s", path)
			return
		}
	}

	log.Println("No .env file found, using environment variables")
}

func Load() Config {
	// Load environment variables from .env file first
	LoadEnv()

	log.Println("Loading configuration from environment variables")
	return Config{
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DatabaseHost:     getEnv("DB_HOST", "localhost"),
		DatabasePort:     getEnv("DB_PORT", "5432"),
		DatabaseUser:     getEnv("DB_USER", "postgres"),
		DatabasePassword: getEnv("DB_PASSWORD", "postgres"),
		DatabaseName:     getEnv("DB_NAME", "tours"),
		DatabaseSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		AWSRegion:          getEnv("AWS_REGION", "eu-central-1"),
		AWSEndpoint:        getEnv("AWS_LOCAL_ENDPOINT_URL", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		S3Bucket:        getEnv("S3_IMAGES_BUCKET", ""),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		SQSBookingsQueueURL: getEnv("AWS_SQS_BOOKINGS_QUEUE_URL", ""),

		KafkaURL:         getEnv("KAFKA_URL", ""),
		EventsKafkaTopic: getEnv("EVENTS_KAFKA_TOPIC", ""),

		AllowedOrigins: splitEnv("CORS_ALLOWED_ORIGINS", "*"),
		AllowedMethods: splitEnv("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS"),
		AllowedHeaders: splitEnv("CORS_ALLOWED_HEADERS", "Authorization, Content-Type"),
		MaxAge:         3600,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	log.Printf("Env var %s not set, using fallback: %s", key, fallback)
	return fallback
}

// splitEnv reads a comma-separated env var into a trimmed slice.
func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
