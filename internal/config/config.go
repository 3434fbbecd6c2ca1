package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ResolverHeader = "header"
	ResolverToken  = "token"
)

type Config struct {
	AppPort     string `env:"APP_PORT" envDefault:"5000"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`

	// Tenant resolution
	TenantResolver    string `env:"TENANT_RESOLVER" envDefault:"header"`
	TenantHeader      string `env:"TENANT_HEADER" envDefault:"X-Tenant-Id"`
	DefaultTenantID   int64  `env:"DEFAULT_TENANT_ID" envDefault:"1"`
	TenantTokenSecret string `env:"TENANT_TOKEN_SECRET"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`

	// Rate limiting is off unless a limit is set; Redis is optional
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	APIRateLimit   int           `env:"API_RATE_LIMIT" envDefault:"0"`
	WriteRateLimit int           `env:"WRITE_RATE_LIMIT" envDefault:"0"`
	APIRateWindow  time.Duration `env:"API_RATE_WINDOW" envDefault:"1m"`

	AllowedOrigin string `env:"ALLOWED_ORIGIN"`
	FrontendDir   string `env:"FRONTEND_DIR"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.TenantResolver {
	case ResolverHeader:
	case ResolverToken:
		if c.TenantTokenSecret == "" {
			return errors.New("TENANT_TOKEN_SECRET is required when TENANT_RESOLVER=token")
		}
	default:
		return fmt.Errorf("unknown TENANT_RESOLVER %q", c.TenantResolver)
	}
	if c.APIRateWindow <= 0 {
		return errors.New("API_RATE_WINDOW must be positive")
	}
	return nil
}
