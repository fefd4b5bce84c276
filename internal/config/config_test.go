package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Default Values", func(t *testing.T) {
		cfg, err := Load(viper.New())
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.AppPort)
		assert.Equal(t, "sqlite", cfg.DatabaseDriver)
		assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
		assert.Equal(t, 0, cfg.BcryptCost)
		assert.Empty(t, cfg.RabbitMQURL)
	})

	t.Run("Environment Variables", func(t *testing.T) {
		t.Setenv("APP_PORT", ":9999")
		t.Setenv("TOKEN_TTL", "15m")
		t.Setenv("BCRYPT_COST", "4")

		cfg, err := Load(viper.New())
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.AppPort)
		assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
		assert.Equal(t, 4, cfg.BcryptCost)
	})

	t.Run("Explicit Overrides", func(t *testing.T) {
		v := viper.New()
		v.Set("DATABASE_DSN", "file::memory:")

		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "file::memory:", cfg.DatabaseDSN)
	})

	t.Run("Invalid TTL", func(t *testing.T) {
		t.Setenv("TOKEN_TTL", "-1h")

		_, err := Load(viper.New())
		assert.Error(t, err)
	})
}
