// Package config loads runtime settings from defaults, an optional YAML file,
// an optional .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lemonberrylabs/truthtable/pkg/engine"
	"github.com/lemonberrylabs/truthtable/pkg/render"
)

// MaxVariablesCeiling bounds the configurable variable limit; a table with
// 2^10 rows is already far past readable.
const MaxVariablesCeiling = 10

// Config holds every setting the binary understands.
type Config struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	GRPCPort     int    `yaml:"grpc_port"`
	MaxVariables int    `yaml:"max_variables"`
	ColumnWidth  int    `yaml:"column_width"`
	Output       string `yaml:"output"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Host:         "0.0.0.0",
		Port:         8787,
		GRPCPort:     8788,
		MaxVariables: engine.DefaultMaxVariables,
		ColumnWidth:  render.DefaultColumnWidth,
		Output:       string(render.FormatText),
	}
}

// Load builds a Config. path names an optional YAML file; an empty path skips
// it. The .env file named by TRUTHTABLE_ENV_FILE (default ".env") is loaded
// when present and never overrides variables already set.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	envFile := envOrDefault("TRUTHTABLE_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HOST"); v != "" {
		c.Host = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Port},
		{"GRPC_PORT", &c.GRPCPort},
		{"TRUTHTABLE_MAX_VARIABLES", &c.MaxVariables},
		{"TRUTHTABLE_COLUMN_WIDTH", &c.ColumnWidth},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}
	if v := os.Getenv("TRUTHTABLE_OUTPUT"); v != "" {
		c.Output = v
	}
	return nil
}

// Validate checks ranges and the output format name.
func (c *Config) Validate() error {
	if c.MaxVariables < 1 || c.MaxVariables > MaxVariablesCeiling {
		return fmt.Errorf("max_variables must be between 1 and %d, got %d", MaxVariablesCeiling, c.MaxVariables)
	}
	if c.ColumnWidth < 1 || c.ColumnWidth > render.MaxColumnWidth {
		return fmt.Errorf("column_width must be between 1 and %d, got %d", render.MaxColumnWidth, c.ColumnWidth)
	}
	if _, err := render.ParseFormat(c.Output); err != nil {
		return err
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GRPCAddr returns the gRPC listen address.
func (c *Config) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
