// Package config loads zaloga settings from an optional yaml file, a .env
// file and ZALOGA_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseConfig selects the backend and its connection string.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// LogConfig sets the log level and an optional log file.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// StockConfig selects the stock mutation strategy.
type StockConfig struct {
	Strategy string `mapstructure:"strategy"`
}

// Config is the complete zaloga configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Stock    StockConfig    `mapstructure:"stock"`
	Currency string         `mapstructure:"currency"`
}

// EnvPrefix prefixes environment overrides, e.g. ZALOGA_DATABASE_DSN.
const EnvPrefix = "ZALOGA"

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "zaloga.sqlite3")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("stock.strategy", "atomic")
	v.SetDefault("currency", "€")
}

// Load reads configuration. path may be empty, in which case config.yaml in
// the working directory is used if present. A missing .env is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
