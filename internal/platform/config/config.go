package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config captures process-level configuration for the admission commands.
// Admission thresholds (minimum age, minimum credit limit) are policy, not
// configuration, and live in the admission package.
type Config struct {
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
	Redis    RedisConfig
	Oracle   OracleConfig
}

// DatabaseConfig holds PostgreSQL settings. An empty URL selects the
// in-memory client directory and user store.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS, default=10"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS, default=5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME, default=30m"`
	AutoMigrate     bool          `env:"DATABASE_AUTO_MIGRATE, default=false"`
}

// RedisConfig holds Redis settings. An empty URL disables the oracle cache.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE, default=10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS, default=2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT, default=5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT, default=3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT, default=3s"`
}

// OracleConfig selects the credit limit oracle. An empty URL selects the
// static oracle, which answers DefaultLimit for every surname.
type OracleConfig struct {
	URL          string        `env:"CREDIT_ORACLE_URL"`
	APIKey       string        `env:"CREDIT_ORACLE_API_KEY"`
	Timeout      time.Duration `env:"CREDIT_ORACLE_TIMEOUT, default=5s"`
	CacheTTL     time.Duration `env:"CREDIT_ORACLE_CACHE_TTL, default=10m"`
	DefaultLimit int64         `env:"CREDIT_ORACLE_DEFAULT_LIMIT, default=1000"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l so tests can supply a map.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Oracle.Timeout <= 0 {
		return nil, fmt.Errorf("load config: CREDIT_ORACLE_TIMEOUT must be positive")
	}
	return &cfg, nil
}
