// Package config loads the database connection parameters for the
// application from a YAML file, with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Database holds the connection parameters for the relational store.
type Database struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"` // empty means "look in the OS keyring"
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
	MinConns int32  `mapstructure:"min_conns"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// Config is the root of collectdesk.yaml.
type Config struct {
	Database Database `mapstructure:"database"`
}

// DSN renders the parameters as a pgx keyword/value connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// InitConfigDir returns the platform config directory for collectdesk,
// creating it if needed. Falls back to the current directory on error.
func InitConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(base, "collectdesk")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "."
	}
	return dir
}

// Load reads collectdesk.yaml from dir. A missing file is not an error: the
// defaults below apply, and any COLLECTDESK_* environment variable overrides
// the corresponding key.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("collectdesk")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "collectdesk")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "collectdesk")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conns", 10)

	v.SetEnvPrefix("COLLECTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
