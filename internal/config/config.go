// Package config loads CLI and server settings from an optional YAML file,
// a .env file and environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the CLI needs to talk to the portal.
type Config struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	TestMode  bool   `yaml:"test_mode"`
	Anonymous bool   `yaml:"anonymous"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// ListenAddr is only used by the serve command.
	ListenAddr string `yaml:"listen_addr"`
}

// Load assembles the configuration. A missing .env or YAML file is not an
// error; explicit environment variables always win.
func Load(yamlPath string) (*Config, error) {
	// Populates os.Environ from ./.env when present.
	_ = godotenv.Load()

	config := &Config{
		LogLevel:   "info",
		LogFormat:  "console",
		ListenAddr: ":8365",
	}

	if yamlPath != "" {
		raw, err := os.ReadFile(yamlPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", yamlPath, err)
		}
	}

	config.Username = getEnv("EARSIV_USERNAME", config.Username)
	config.Password = getEnv("EARSIV_PASSWORD", config.Password)
	config.TestMode = getEnvBool("EARSIV_TEST_MODE", config.TestMode)
	config.Anonymous = getEnvBool("EARSIV_ANONYMOUS", config.Anonymous)
	config.LogLevel = getEnv("EARSIV_LOG_LEVEL", config.LogLevel)
	config.LogFormat = getEnv("EARSIV_LOG_FORMAT", config.LogFormat)
	config.ListenAddr = getEnv("EARSIV_LISTEN_ADDR", config.ListenAddr)

	return config, nil
}

// ValidateCredentials checks that a real or anonymous login is possible.
func (c *Config) ValidateCredentials() error {
	if c.Anonymous {
		return nil
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("EARSIV_USERNAME and EARSIV_PASSWORD are required unless anonymous mode is enabled")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
