/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the flashkit configuration
type Config struct {
	DataDir  string   `yaml:"data_dir"`
	Port     int      `yaml:"port"`
	Bind     string   `yaml:"bind"`
	Security Security `yaml:"security"`
	Movie    Movie    `yaml:"movie"`
	Image    Image    `yaml:"image"`
	Logging  Logging  `yaml:"logging"`
}

// Security contains API authentication settings
type Security struct {
	APIKey string `yaml:"api_key"`
	// MaxUploadSize limits request bodies accepted by the API, in bytes.
	MaxUploadSize int64 `yaml:"max_upload_size"`
	// MaxDecodedSize limits the uncompressed size of movies, in bytes.
	MaxDecodedSize int `yaml:"max_decoded_size"`
}

// Movie contains defaults for movies created by the tools
type Movie struct {
	Version   int     `yaml:"version"`
	FrameRate float64 `yaml:"frame_rate"`
	Compress  bool    `yaml:"compress"`
}

// Image contains image ingestion settings
type Image struct {
	JPEGQuality int `yaml:"jpeg_quality"`
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
		Security: Security{
			APIKey:         "auto",
			MaxUploadSize:  32 << 20,
			MaxDecodedSize: 256 << 20,
		},
		Movie: Movie{
			Version:   10,
			FrameRate: 12,
		},
		Image: Image{
			JPEGQuality: 85,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate checks the values a config file may get wrong
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.Newf("invalid port %d", c.Port)
	}
	if c.Security.MaxDecodedSize < 0 {
		return errors.Newf("invalid max decoded size %d", c.Security.MaxDecodedSize)
	}
	if c.Movie.Version < 1 || c.Movie.Version > 255 {
		return errors.Newf("invalid movie version %d", c.Movie.Version)
	}
	if c.Movie.FrameRate <= 0 || c.Movie.FrameRate >= 256 {
		return errors.Newf("invalid frame rate %g", c.Movie.FrameRate)
	}
	if c.Image.JPEGQuality < 1 || c.Image.JPEGQuality > 100 {
		return errors.Newf("invalid jpeg quality %d", c.Image.JPEGQuality)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a logging level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return slog.LevelInfo, errors.Wrapf(err, "invalid logging level %q", level)
	}
	return l, nil
}

// LoadConfig loads configuration from the specified path. Fields missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.Newf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, errors.Wrap(err, "invalid config path")
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config file")
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	// 0600, the file holds the API key
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", errors.Wrap(err, "failed to generate secure key")
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated API key
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	apiKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate API key")
	}
	config.Security.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, errors.Wrap(err, "failed to save bootstrap config")
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./flashkit.yaml"
	}

	// ~/.config/flashkit/config.yaml on Linux and macOS
	return filepath.Join(homeDir, ".config", "flashkit", "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
