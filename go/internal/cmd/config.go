package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pgdem/desporto/go/internal/kvstore"
	"github.com/pgdem/desporto/go/internal/store"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverNATS     = "nats"
)

type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"` // console or json

	Server struct {
		Port            string   `yaml:"port"`
		AllowedOrigins  []string `yaml:"allowed_origins"`
		ShutdownSeconds int      `yaml:"shutdown_seconds"`
	} `yaml:"server"`

	Store struct {
		Driver        string `yaml:"driver"`
		KeyPrefix     string `yaml:"key_prefix"`
		NotifyChannel string `yaml:"notify_channel"`
	} `yaml:"store"`

	NATS struct {
		URL            string `yaml:"url"`
		Bucket         string `yaml:"bucket"`
		Stream         string `yaml:"stream"`
		PublishChanges bool   `yaml:"publish_changes"`
	} `yaml:"nats"`
}

func defaultConfig() *Config {
	var c Config
	c.Environment = "development"
	c.LogLevel = "info"
	c.LogFormat = "console"
	c.Server.Port = "8080"
	c.Server.AllowedOrigins = []string{"*"}
	c.Server.ShutdownSeconds = 10
	c.Store.Driver = DriverMemory
	c.Store.KeyPrefix = store.DefaultPrefix
	c.Store.NotifyChannel = kvstore.DefaultNotifyChannel
	c.NATS.URL = kvstore.DefaultNATSConfig().URL
	c.NATS.Bucket = kvstore.DefaultNATSConfig().Bucket
	c.NATS.Stream = "PGDEM_CHANGES"
	return &c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// loadConfig reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(config)
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(c *Config) {
	c.Environment = getEnv("PGDEM_ENV", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ShutdownSeconds = getEnvAsInt("SHUTDOWN_SECONDS", c.Server.ShutdownSeconds)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	c.Store.Driver = getEnv("STORE_DRIVER", c.Store.Driver)
	c.Store.KeyPrefix = getEnv("STORE_PREFIX", c.Store.KeyPrefix)
	c.NATS.URL = getEnv("NATS_URL", c.NATS.URL)
	c.NATS.PublishChanges = getEnvAsBool("NATS_PUBLISH_CHANGES", c.NATS.PublishChanges)
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverPostgres, DriverNATS:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Store.KeyPrefix == "" {
		return fmt.Errorf("store key prefix cannot be empty")
	}
	return nil
}
