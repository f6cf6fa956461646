package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	LevelTime      int           `env:"LEVEL_TIME" envDefault:"30"`
	TickInterval   time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`
	PointsPerHit   int           `env:"POINTS_PER_HIT" envDefault:"20"`
	MaxHotspots    int           `env:"MAX_HOTSPOTS" envDefault:"8"`
	GracePeriod    time.Duration `env:"GRACE_PERIOD" envDefault:"10s"`
	ContentDBDSN   string        `env:"CONTENT_DB_DSN"`
	LogDev         bool          `env:"LOG_DEV"`
}

// Load reads .env if present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
