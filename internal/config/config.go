// Package config loads settings from config.yaml and ONAIR_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds the server, catalog and display settings.
type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Catalog struct {
		BaseURL        string `mapstructure:"base_url"`
		PageSize       int    `mapstructure:"page_size"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"catalog"`
	Display struct {
		Timezone string `mapstructure:"timezone"`
	} `mapstructure:"display"`
}

// Timeout is the catalog request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}

// Location resolves the display timezone, falling back to the host's.
func (c *Config) Location() *time.Location {
	name := c.Display.Timezone
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}

// Load reads configuration. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ONAIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register keys
	v.BindEnv("server.addr")
	v.BindEnv("catalog.base_url")
	v.BindEnv("catalog.page_size")
	v.BindEnv("catalog.timeout_seconds")
	v.BindEnv("display.timezone")

	// Defaults
	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("catalog.base_url", "https://api.kexp.org/v2")
	v.SetDefault("catalog.page_size", 250)
	v.SetDefault("catalog.timeout_seconds", 15)
	v.SetDefault("display.timezone", "Local")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Println("Info: config.yaml not found, using environment variables only.")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Catalog.BaseURL == "" {
		return nil, errors.New("catalog.base_url is empty (ONAIR_CATALOG_BASE_URL)")
	}
	if cfg.Catalog.TimeoutSeconds <= 0 {
		cfg.Catalog.TimeoutSeconds = 15
	}
	return &cfg, nil
}
