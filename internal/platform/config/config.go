package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	RulesFile       string
	TokenSigningKey string
	TokenTTL        time.Duration
	CacheTTL        time.Duration
	Redis           RedisConfig
	PostgresDSN     string
	Kafka           KafkaConfig
}

// RedisConfig configures the optional decision cache backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional decision event stream.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("VOUCH_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	signingKey := os.Getenv("VOUCH_TOKEN_SIGNING_KEY")
	if signingKey == "" {
		// Development default; override in production.
		signingKey = "dev-secret-key-change-in-production"
	}

	topic := os.Getenv("VOUCH_KAFKA_TOPIC")
	if topic == "" {
		topic = "vouch.decisions"
	}

	var brokers []string
	if raw := os.Getenv("VOUCH_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:            addr,
		RulesFile:       os.Getenv("VOUCH_RULES_FILE"),
		TokenSigningKey: signingKey,
		TokenTTL:        durationFromEnv("VOUCH_TOKEN_TTL", 15*time.Minute),
		CacheTTL:        durationFromEnv("VOUCH_CACHE_TTL", 5*time.Minute),
		Redis: RedisConfig{
			URL:          os.Getenv("VOUCH_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		PostgresDSN: os.Getenv("VOUCH_POSTGRES_DSN"),
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   topic,
		},
	}
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
