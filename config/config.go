// Package config loads process configuration from an optional YAML file,
// a .env file and WIDGETS_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main application configuration struct.
type Config struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	SchemaSource    string        `mapstructure:"schema_source"`
	LoadTimeoutMS   int           `mapstructure:"load_timeout_ms"`
	RequireNonEmpty bool          `mapstructure:"require_non_empty"`
	Logging         LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration. An explicit path wins; otherwise config.yaml is
// searched for in the working directory and ./configs, and it is fine for no
// file to exist at all. Environment variables override file values, e.g.
// WIDGETS_PORT or WIDGETS_SCHEMA_SOURCE.
func Load(path string) (*Config, error) {
	// Best effort; absence of a .env file is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("WIDGETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func defaults() map[string]interface{} {
	// Every key is registered here so environment-only overrides are
	// visible to Unmarshal.
	return map[string]interface{}{
		"host":              "127.0.0.1",
		"port":              6900,
		"schema_source":     "",
		"load_timeout_ms":   10000,
		"require_non_empty": false,
		"logging.level":     "info",
		"logging.format":    "json",
	}
}

func validate(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.LoadTimeoutMS <= 0 {
		return fmt.Errorf("load_timeout_ms must be positive")
	}
	return nil
}

// Addr returns the bind address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadTimeout returns the schema load timeout as a duration.
func (c *Config) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutMS) * time.Millisecond
}
