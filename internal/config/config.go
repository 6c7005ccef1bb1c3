package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int           `env:"PORT" env-default:"8080"`
	DatabasePath string        `env:"DATABASE_PATH" env-default:"./blog.db"`
	JWTSecret    string        `env:"JWT_SECRET" env-default:"dev-secret-change-me"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" env-default:"24h"`
	LogLevel     string        `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from environment variables, falling back to the
// defaults declared on the struct tags.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
