// Package config loads runtime configuration from the environment and an
// optional YAML file, and sets up logging.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// Logging
	LogFile  string     `yaml:"log_file"`
	LogLevel slog.Level `yaml:"-"`

	// Scoring defaults
	DefaultExpansionMode string `yaml:"default_expansion_mode"`
	DefaultFormat        string `yaml:"default_format"`

	// Batch scoring
	BatchConcurrency int `yaml:"batch_concurrency"`
}

// fileConfig is the YAML shape; levels arrive as strings.
type fileConfig struct {
	LogFile              string `yaml:"log_file"`
	LogLevel             string `yaml:"log_level"`
	DefaultExpansionMode string `yaml:"default_expansion_mode"`
	DefaultFormat        string `yaml:"default_format"`
	BatchConcurrency     int    `yaml:"batch_concurrency"`
}

// Load reads configuration. Precedence: environment variables over the YAML
// file named by CMAPSCORE_CONFIG (default ~/.cmapscore.yaml if present) over
// built-in defaults. A missing config file is not an error.
func Load() (Config, error) {
	cfg := Config{
		LogFile:              "",
		LogLevel:             slog.LevelInfo,
		DefaultExpansionMode: "junction",
		DefaultFormat:        "text",
		BatchConcurrency:     4,
	}

	if fc, err := readFile(configPath()); err != nil {
		return cfg, err
	} else if fc != nil {
		if fc.LogFile != "" {
			cfg.LogFile = fc.LogFile
		}
		if fc.LogLevel != "" {
			cfg.LogLevel = parseLogLevel(fc.LogLevel)
		}
		if fc.DefaultExpansionMode != "" {
			cfg.DefaultExpansionMode = fc.DefaultExpansionMode
		}
		if fc.DefaultFormat != "" {
			cfg.DefaultFormat = fc.DefaultFormat
		}
		if fc.BatchConcurrency > 0 {
			cfg.BatchConcurrency = fc.BatchConcurrency
		}
	}

	cfg.LogFile = getEnv("CMAPSCORE_LOG_FILE", cfg.LogFile)
	if lvl := os.Getenv("CMAPSCORE_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = parseLogLevel(lvl)
	}
	cfg.DefaultExpansionMode = getEnv("CMAPSCORE_EXPANSION_MODE", cfg.DefaultExpansionMode)
	cfg.DefaultFormat = getEnv("CMAPSCORE_FORMAT", cfg.DefaultFormat)
	if c := os.Getenv("CMAPSCORE_BATCH_CONCURRENCY"); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid CMAPSCORE_BATCH_CONCURRENCY %q", c)
		}
		cfg.BatchConcurrency = n
	}

	return cfg, nil
}

func configPath() string {
	if p := os.Getenv("CMAPSCORE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.cmapscore.yaml"
}

// readFile returns nil when the file does not exist.
func readFile(path string) (*fileConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &fc, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
