package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported values for STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds everything the service reads from the environment.
type Config struct {
	AppPort                 string
	StoreDriver             string
	DatabaseDSN             string
	RedisURL                string
	RabbitMQURL             string
	JWTSecret               string
	VisitorTokenTTL         time.Duration
	CheckoutProcessingDelay time.Duration
	OrderNumberPrefix       string
	HashPasswords           bool
}

// Load reads configuration from environment variables and, when CONFIG_FILE
// is set, from that file. Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	return FromViper(v)
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("DATABASE_DSN", "file:equaline.db?cache=shared")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "equaline-dev-secret")
	v.SetDefault("VISITOR_TOKEN_TTL", "720h")
	v.SetDefault("CHECKOUT_PROCESSING_DELAY", "2s")
	v.SetDefault("ORDER_NUMBER_PREFIX", "EQ")
	v.SetDefault("AUTH_HASH_PASSWORDS", false)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:                 v.GetString("APP_PORT"),
		StoreDriver:             strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseDSN:             v.GetString("DATABASE_DSN"),
		RedisURL:                v.GetString("REDIS_URL"),
		RabbitMQURL:             v.GetString("RABBITMQ_URL"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		VisitorTokenTTL:         v.GetDuration("VISITOR_TOKEN_TTL"),
		CheckoutProcessingDelay: v.GetDuration("CHECKOUT_PROCESSING_DELAY"),
		OrderNumberPrefix:       v.GetString("ORDER_NUMBER_PREFIX"),
		HashPasswords:           v.GetBool("AUTH_HASH_PASSWORDS"),
	}

	switch cfg.StoreDriver {
	case DriverMemory, DriverSQLite, DriverPostgres, DriverRedis:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.VisitorTokenTTL <= 0 {
		return nil, fmt.Errorf("VISITOR_TOKEN_TTL must be positive, got %s", cfg.VisitorTokenTTL)
	}
	if cfg.CheckoutProcessingDelay < 0 {
		return nil, fmt.Errorf("CHECKOUT_PROCESSING_DELAY must not be negative, got %s", cfg.CheckoutProcessingDelay)
	}

	return cfg, nil
}
