package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centralizes service configuration from environment variables.
type Config struct {
	MongoURI        string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB         string        `env:"MONGO_DB" envDefault:"stresssense"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	MetricsCacheTTL time.Duration `env:"METRICS_CACHE_TTL" envDefault:"10m"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
