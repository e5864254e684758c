package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"equaline/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, config.DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 720*time.Hour, cfg.VisitorTokenTTL)
	assert.Equal(t, 2*time.Second, cfg.CheckoutProcessingDelay)
	assert.Equal(t, "EQ", cfg.OrderNumberPrefix)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.False(t, cfg.HashPasswords)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("STORE_DRIVER", " Redis ")
	v.Set("CHECKOUT_PROCESSING_DELAY", "0s")
	v.Set("AUTH_HASH_PASSWORDS", "true")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, config.DriverRedis, cfg.StoreDriver)
	assert.Equal(t, time.Duration(0), cfg.CheckoutProcessingDelay)
	assert.True(t, cfg.HashPasswords)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
		msg  string
	}{
		{"unknown driver", "STORE_DRIVER", "mongo", "unsupported STORE_DRIVER"},
		{"empty secret", "JWT_SECRET", "", "JWT_SECRET"},
		{"zero ttl", "VISITOR_TOKEN_TTL", "0s", "VISITOR_TOKEN_TTL"},
		{"negative delay", "CHECKOUT_PROCESSING_DELAY", "-1s", "CHECKOUT_PROCESSING_DELAY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			config.SetDefaults(v)
			v.Set(tt.key, tt.val)

			_, err := config.FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "equaline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ORDER_NUMBER_PREFIX: WTR\nSTORE_DRIVER: sqlite\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", ":9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "WTR", cfg.OrderNumberPrefix)
	assert.Equal(t, config.DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, ":9090", cfg.AppPort)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
