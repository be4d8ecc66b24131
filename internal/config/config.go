package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR" env-default:":8080" env-description:"address the HTTP server listens on"`
	LogLevel      string        `env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	ComputerDelay time.Duration `env:"COMPUTER_DELAY" env-default:"500ms" env-description:"pause before the computer replies over websocket"`
	Redis         Redis
	Telemetry     Telemetry
}

type Redis struct {
	Addr       string        `env:"REDIS_ADDR" env-description:"redis address; empty keeps games in memory"`
	SessionTTL time.Duration `env:"SESSION_TTL" env-default:"24h" env-description:"idle time after which a game is dropped"`
}

type Telemetry struct {
	Endpoint       string `env:"OTEL_ENDPOINT" env-description:"OTLP gRPC collector address; empty disables export"`
	ServiceName    string `env:"SERVICE_NAME" env-default:"tic-tac-toe-solo"`
	ServiceVersion string `env:"SERVICE_VERSION" env-default:"v0.1.0"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("unable to read config from env: %w", err)
	}
	if cfg.ComputerDelay < 0 {
		return nil, fmt.Errorf("COMPUTER_DELAY must not be negative, got %s", cfg.ComputerDelay)
	}
	return cfg, nil
}

// MustLoad - load configuration or panic.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Usage describes every supported environment variable.
func Usage() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return err.Error()
	}
	return text
}

// UsesRedis reports whether games should be kept in redis.
func (c *Config) UsesRedis() bool {
	return c.Redis.Addr != ""
}
