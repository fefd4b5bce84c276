package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	AppPort        string        `mapstructure:"APP_PORT"`
	DatabaseDriver string        `mapstructure:"DATABASE_DRIVER"`
	DatabaseDSN    string        `mapstructure:"DATABASE_DSN"`
	DBLogLevel     string        `mapstructure:"DB_LOG_LEVEL"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	TokenTTL       time.Duration `mapstructure:"TOKEN_TTL"`
	BcryptCost     int           `mapstructure:"BCRYPT_COST"`
	RabbitMQURL    string        `mapstructure:"RABBITMQ_URL"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "recipebox.db")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("JWT_SECRET", "change_me")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("BCRYPT_COST", 0) // 0 selects bcrypt.DefaultCost
	v.SetDefault("RABBITMQ_URL", "")
}

// Load reads the configuration from v, falling back to defaults.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("unable to decode config into struct: %v", err)
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}
