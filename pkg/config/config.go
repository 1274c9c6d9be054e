/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/fieldsheet/pkg/store"
)

const (
	BackendSheets = "sheets"
	BackendLocal  = "local"
)

// Environment variables applied on top of the config file.
const (
	EnvSpreadsheetID       = "GOOGLE_SPREADSHEET_ID"
	EnvServiceAccountEmail = "GOOGLE_SERVICE_ACCOUNT_EMAIL"
	EnvPrivateKey          = "GOOGLE_PRIVATE_KEY"
	EnvCredentialsFile     = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvRange               = "FIELDSHEET_RANGE"
	EnvBackend             = "FIELDSHEET_BACKEND"
	EnvAPIKey              = "FIELDSHEET_API_KEY"
	EnvLogLevel            = "FIELDSHEET_LOG_LEVEL"
	EnvPort                = "PORT"
)

// Config represents the fieldsheet configuration
type Config struct {
	DataDir  string   `yaml:"data_dir"`
	Port     int      `yaml:"port"`
	Bind     string   `yaml:"bind"`
	Sheet    Sheet    `yaml:"sheet"`
	Google   Google   `yaml:"google"`
	Security Security `yaml:"security"`
	Logging  Logging  `yaml:"logging"`
}

// Sheet addresses the form field table
type Sheet struct {
	SpreadsheetID string `yaml:"spreadsheet_id"`
	Range         string `yaml:"range"`
	Backend       string `yaml:"backend"`
}

// Google contains service account credentials
type Google struct {
	ServiceAccountEmail string `yaml:"service_account_email"`
	PrivateKey          string `yaml:"private_key,omitempty"`
	CredentialsFile     string `yaml:"credentials_file,omitempty"`
}

// Security contains security-related configuration
type Security struct {
	APIKey string `yaml:"api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Sheet: Sheet{
			Range:   store.DefaultRange,
			Backend: BackendSheets,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path. Missing values keep
// their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides config values with any environment variables that are set
func (c *Config) ApplyEnv() error {
	setString(&c.Sheet.SpreadsheetID, EnvSpreadsheetID)
	setString(&c.Sheet.Range, EnvRange)
	setString(&c.Sheet.Backend, EnvBackend)
	setString(&c.Google.ServiceAccountEmail, EnvServiceAccountEmail)
	setString(&c.Google.PrivateKey, EnvPrivateKey)
	setString(&c.Google.CredentialsFile, EnvCredentialsFile)
	setString(&c.Security.APIKey, EnvAPIKey)
	setString(&c.Logging.Level, EnvLogLevel)

	if v, ok := os.LookupEnv(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Port = port
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate checks values the server cannot start without. An empty
// spreadsheet ID is allowed; requests then fail with a configuration error.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.Sheet.Backend {
	case BackendSheets, BackendLocal:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Sheet.Backend, BackendSheets, BackendLocal)
	}
	if c.Sheet.Range == "" {
		return fmt.Errorf("sheet range must not be empty")
	}
	return nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated API key and
// saves it to configPath
func BootstrapConfig(configPath, spreadsheetID string) (*Config, error) {
	config := DefaultConfig()
	config.Sheet.SpreadsheetID = spreadsheetID

	apiKey, err := GenerateSecureKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Security.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./fieldsheet.yaml"
	}

	// For Linux/macOS, use ~/.config/fieldsheet/config.yaml
	configDir := filepath.Join(homeDir, ".config", "fieldsheet")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
