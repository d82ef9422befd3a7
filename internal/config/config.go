// Package config provides configuration for the chat service.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	Port        int    `envconfig:"PORT" default:"8000"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:"chat.db"`

	// Origins allowed to reach both the REST API and the WebSocket
	// endpoint. "*" allows any origin.
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost,http://localhost:3000,http://localhost:3001"`

	// WebSocket settings
	PingInterval   time.Duration `envconfig:"WS_PING_INTERVAL" default:"30s"`
	WriteTimeout   time.Duration `envconfig:"WS_WRITE_TIMEOUT" default:"10s"`
	ReadTimeout    time.Duration `envconfig:"WS_READ_TIMEOUT" default:"60s"`
	MaxMessageSize int64         `envconfig:"WS_MAX_MESSAGE_SIZE" default:"65536"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
