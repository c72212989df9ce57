// Package config handles loading and managing application configuration
// from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration values. Command-line flags
// take precedence over these; environment variables with the QRMINT_
// prefix sit in between.
type Config struct {
	BaseURL  string `yaml:"base_url"`
	OutDir   string `yaml:"out_dir"`
	Format   string `yaml:"format"`
	TokenLen int    `yaml:"token_len"`
	Zip      bool   `yaml:"zip"`
	Output   string `yaml:"output"`
	QRSize   int    `yaml:"qr_size"`
	QRBorder bool   `yaml:"qr_border"`
	LogLevel string `yaml:"log_level"`
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	return &Config{
		BaseURL:  "",
		OutDir:   "qr_out",
		Format:   "png",
		TokenLen: 8,
		Zip:      false,
		Output:   "output.csv",
		QRSize:   512,
		QRBorder: true,
		LogLevel: "info",
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. A .env file in the working directory
// is loaded first, then environment variables with the QRMINT_ prefix
// override any file or default values.
func Load(path string) (*Config, error) {
	// Missing .env is fine; it only exists to feed env overrides.
	_ = godotenv.Load()

	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// File doesn't exist — proceed with defaults.
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides applies QRMINT_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QRMINT_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("QRMINT_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv("QRMINT_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("QRMINT_TOKEN_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TokenLen = n
		}
	}
	if v := os.Getenv("QRMINT_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("QRMINT_QR_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.QRSize = n
		}
	}
	if v := os.Getenv("QRMINT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("QRMINT_ZIP"); v != "" {
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			cfg.Zip = true
		case "false", "0", "no":
			cfg.Zip = false
		}
	}
	if v := os.Getenv("QRMINT_QR_BORDER"); v != "" {
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			cfg.QRBorder = true
		case "false", "0", "no":
			cfg.QRBorder = false
		}
	}
}

// Validate checks cross-field constraints that YAML parsing cannot express.
func (c *Config) Validate() error {
	if c.Format != "png" && c.Format != "svg" {
		return fmt.Errorf("invalid format %q: must be png or svg", c.Format)
	}
	if c.TokenLen < 1 {
		return fmt.Errorf("invalid token_len %d: must be at least 1", c.TokenLen)
	}
	if c.QRSize < 1 {
		return fmt.Errorf("invalid qr_size %d: must be at least 1", c.QRSize)
	}
	return nil
}
