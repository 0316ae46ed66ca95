package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sampling SamplingConfig `toml:"sampling"`
	Logging  LoggingConfig  `toml:"logging"`
}

type SamplingConfig struct {
	RateWindow string `toml:"rate_window"`
	CPUWindow  string `toml:"cpu_window"`
	DiskDevice string `toml:"disk_device"`

	RateWindowD time.Duration `toml:"-"`
	CPUWindowD  time.Duration `toml:"-"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func Default() *Config {
	return &Config{
		Sampling: SamplingConfig{
			RateWindow:  "1s",
			CPUWindow:   "1s",
			DiskDevice:  "sda",
			RateWindowD: time.Second,
			CPUWindowD:  time.Second,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

func LoadFromFile(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expand path: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}

	if err := cfg.postProcess(); err != nil {
		return nil, fmt.Errorf("post process config: %w", err)
	}

	return cfg, nil
}

func (c *Config) postProcess() error {
	var err error

	if c.Sampling.RateWindowD, err = time.ParseDuration(c.Sampling.RateWindow); err != nil {
		return fmt.Errorf("parse sampling.rate_window: %w", err)
	}

	if c.Sampling.CPUWindowD, err = time.ParseDuration(c.Sampling.CPUWindow); err != nil {
		return fmt.Errorf("parse sampling.cpu_window: %w", err)
	}

	c.Sampling.DiskDevice = strings.TrimSpace(c.Sampling.DiskDevice)

	return nil
}

func (c *Config) Validate() error {
	if c.Sampling.RateWindowD <= 0 {
		return fmt.Errorf("rate_window must be positive, got %s", c.Sampling.RateWindow)
	}

	if c.Sampling.CPUWindowD < 0 {
		return fmt.Errorf("cpu_window cannot be negative, got %s", c.Sampling.CPUWindow)
	}

	if c.Sampling.DiskDevice == "" {
		return fmt.Errorf("disk_device cannot be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid logging level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid logging format: %s (valid: json, text)", c.Logging.Format)
	}

	return nil
}

func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HOSTSTAT_RATE_WINDOW"); v != "" {
		cfg.Sampling.RateWindow = v
	}
	if v := os.Getenv("HOSTSTAT_CPU_WINDOW"); v != "" {
		cfg.Sampling.CPUWindow = v
	}
	if v := os.Getenv("HOSTSTAT_DISK_DEVICE"); v != "" {
		cfg.Sampling.DiskDevice = v
	}
	if v := os.Getenv("HOSTSTAT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HOSTSTAT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get user home directory: %w", err)
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}

// Load builds the effective configuration: defaults, then the optional
// file at configPath, then HOSTSTAT_* environment variables.
func Load(configPath string) (*Config, error) {
	var cfg *Config
	var err error

	if configPath != "" {
		cfg, err = LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config from %s: %w", configPath, err)
		}
	} else {
		cfg = Default()
	}

	ApplyEnvOverrides(cfg)

	if err := cfg.postProcess(); err != nil {
		return nil, fmt.Errorf("post process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
