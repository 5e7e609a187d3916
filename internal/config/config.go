package config

import (
	"errors"
	"fmt"

	"github.com/cloudpay/paymentledger/pkg/postgres"
	"github.com/spf13/viper"
)

type Config struct {
	API      API             `mapstructure:"api"`
	Database postgres.Config `mapstructure:"database"`
}

type API struct {
	Port string `mapstructure:"port"`
}

// Load reads config/config.yml when present and lets the process environment
// override it: DATABASE_URL and PORT are the contract the service is deployed
// with. The listener falls back to port 10000 when nothing is set.
func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetDefault("api.port", "10000")
	viper.BindEnv("api.port", "PORT")
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Database.URL == "" {
		return nil, errors.New("database url is not configured (set DATABASE_URL)")
	}

	return cfg, nil
}
