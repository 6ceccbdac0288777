package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/streed/jot/internal/constants"
	interrors "github.com/streed/jot/internal/errors"
)

type Config struct {
	DataDirectory string `yaml:"data_directory" mapstructure:"data_directory"`
	DatabasePath  string `yaml:"database_path,omitempty" mapstructure:"database_path"`
	Debug         bool   `yaml:"debug" mapstructure:"debug"`
	DeleteMode    string `yaml:"delete_mode" mapstructure:"delete_mode"`
}

// getDefaultConfig returns a fresh copy of the default configuration
func getDefaultConfig() Config {
	return Config{
		DataDirectory: "", // Will be set to ~/.local/share/jot
		DatabasePath:  "", // Will be set to DataDirectory/notes.db
		Debug:         false,
		DeleteMode:    constants.DeleteByContent,
	}
}

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, constants.AppName, constants.ConfigFileName), nil
}

func GetDefaultDataDirectory() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "."+constants.AppName)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, constants.AppName)
}

// Load reads the config file from the default location. A missing file is
// not an error; defaults are returned instead.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from path, layering JOT_* environment
// variables over the file and defaults over both.
func LoadFrom(configPath string) (*Config, error) {
	defaults := getDefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_directory", defaults.DataDirectory)
	v.SetDefault("database_path", defaults.DatabasePath)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("delete_mode", defaults.DeleteMode)

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDirectory == "" {
		c.DataDirectory = GetDefaultDataDirectory()
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDirectory, constants.DefaultDatabaseName)
	}
	if c.DeleteMode == "" {
		c.DeleteMode = constants.DeleteByContent
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.DeleteMode {
	case constants.DeleteByContent, constants.DeleteByID:
	default:
		return fmt.Errorf("config: delete_mode %q: %w", c.DeleteMode, interrors.ErrInvalidDeleteMode)
	}
	return nil
}

func SaveTo(cfg *Config, configPath string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), constants.DirMode); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create data directory if it doesn't exist
	if cfg.DataDirectory != "" {
		if err := os.MkdirAll(cfg.DataDirectory, constants.DirMode); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write config file with secure permissions
	if err := os.WriteFile(configPath, data, constants.ConfigFileMode); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadFile reads only the settings stored in the config file at path, with
// no defaults resolved and no environment overrides applied. It is the
// starting point for edits that are written back to the same file. A missing
// file yields an empty config.
func LoadFile(configPath string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if cfg.DeleteMode == "" {
		cfg.DeleteMode = constants.DeleteByContent
	}
	return &cfg, nil
}

func (c *Config) GetDatabasePath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.DataDirectory, constants.DefaultDatabaseName)
}

// DeleteByID reports whether deletions should remove a single row by id
// rather than every row sharing the note's title and content.
func (c *Config) DeleteByID() bool {
	return c.DeleteMode == constants.DeleteByID
}

// Set updates a single key by its YAML name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data_directory":
		c.DataDirectory = value
		// The database follows the data directory unless pinned again.
		c.DatabasePath = ""
	case "database_path":
		c.DatabasePath = value
	case "debug":
		switch strings.ToLower(value) {
		case "true", "yes", "1":
			c.Debug = true
		case "false", "no", "0":
			c.Debug = false
		default:
			return fmt.Errorf("invalid boolean value %q (use true/false)", value)
		}
	case "delete_mode":
		if value != constants.DeleteByContent && value != constants.DeleteByID {
			return fmt.Errorf("config: delete_mode %q: %w", value, interrors.ErrInvalidDeleteMode)
		}
		c.DeleteMode = value
	default:
		return fmt.Errorf("%w: %s", interrors.ErrUnknownConfigKey, key)
	}
	return nil
}
