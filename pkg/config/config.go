package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`
	// RateLimit is the allowed requests per second per client. Zero disables
	// rate limiting.
	RateLimit float64 `envconfig:"RATE_LIMIT"`

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"json"`
	}

	DB struct {
		Driver          string        `envconfig:"DB_DRIVER" default:"postgres"`
		Name            string        `envconfig:"DB_NAME"`
		Host            string        `envconfig:"DB_HOST"`
		Port            int           `envconfig:"DB_PORT"`
		User            string        `envconfig:"DB_USER"`
		Pass            string        `envconfig:"DB_PASS"`
		EnableSSL       bool          `envconfig:"ENABLE_SSL"`
		SQLitePath      string        `envconfig:"DB_SQLITE_PATH" default:"movieinfo.db"`
		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
		QueryTimeout    time.Duration `envconfig:"DB_QUERY_TIMEOUT" default:"5s"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
