package config

import (
	"os"
)

type Config struct {
	AppPort string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string

	NatsURL string

	// Phone verification (Google Identity Toolkit). Empty key selects
	// the fixed-code dev verifier.
	IdentityToolkitAPIKey string

	// Offer description generation. Empty key selects the static fallback.
	AnthropicAPIKey string
}

func Load() Config {

	cfg := Config{

		AppPort: os.Getenv("APP_PORT"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		NatsURL: os.Getenv("NATS_URL"),

		IdentityToolkitAPIKey: os.Getenv("IDENTITY_TOOLKIT_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	return cfg

}
