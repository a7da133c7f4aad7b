package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App        AppConfig        `toml:"app"`
	Mongo      MongoConfig      `toml:"mongo"`
	Pagination PaginationConfig `toml:"pagination"`
}

type AppConfig struct {
	Host                   string `toml:"host"`
	Port                   int    `toml:"port"`
	ShutdownTimeoutSeconds int    `toml:"shutdown_timeout_seconds"`
}

type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type PaginationConfig struct {
	DefaultPageSize int `toml:"default_page_size"`
}

func defaults() Config {
	return Config{
		App: AppConfig{
			Host:                   "0.0.0.0",
			Port:                   8080,
			ShutdownTimeoutSeconds: 15,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "inkwell",
		},
		Pagination: PaginationConfig{
			DefaultPageSize: 10,
		},
	}
}

// Load reads a TOML config file on top of the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("could not load config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets deployment environments override connection settings
// without a config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("INKWELL_HOST"); v != "" {
		c.App.Host = v
	}
	if v := os.Getenv("INKWELL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.App.Port = port
		}
	}
	if v := os.Getenv("INKWELL_MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("INKWELL_MONGO_DATABASE"); v != "" {
		c.Mongo.Database = v
	}
}

func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c AppConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
