package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendLibSQL = "libsql"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"` // Data directory for "file", DSN for "sqlite".
	URL     string `toml:"url"`  // Database URL for "libsql".
}

type LogConfig struct {
	Level string `toml:"level"`
}

// envOverrides are applied on top of the config file when set.
type envOverrides struct {
	Backend  string `env:"FITCAL_BACKEND"`
	DataPath string `env:"FITCAL_DATA_PATH"`
	URL      string `env:"TURSO_DATABASE_URL"`
	LogLevel string `env:"FITCAL_LOG_LEVEL"`
	DevMode  string `env:"DEV_MODE"`
}

// Returns the directory holding config.toml and, by default, the data file.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fitcal"), nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// setDefaultPath fills in an empty Path for the local backends: the config
// dir itself for "file", a fitcal.db inside it for "sqlite".
func (s *StorageConfig) setDefaultPath() error {
	if s.Path != "" {
		return nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	switch s.Backend {
	case BackendFile:
		s.Path = dir
	case BackendSQLite:
		s.Path = filepath.Join(dir, "fitcal.db")
	}
	return nil
}

// Reads the configuration from the config file, .env and the environment.
// Without a config file the data lives in ~/.config/fitcal.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// A missing .env is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	return LoadConfigFrom(path)
}

// LoadConfigFrom reads path (if it exists) and applies environment overrides.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{Backend: BackendFile},
		Log:     LogConfig{Level: "warn"},
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	ov.apply(cfg)

	if err := cfg.Storage.setDefaultPath(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (ov envOverrides) apply(cfg *Config) {
	if ov.Backend != "" {
		cfg.Storage.Backend = ov.Backend
	}
	if ov.DataPath != "" {
		cfg.Storage.Path = ov.DataPath
	}
	if ov.URL != "" {
		cfg.Storage.URL = ov.URL
	}
	if ov.LogLevel != "" {
		cfg.Log.Level = ov.LogLevel
	}

	// Check for a DEV_MODE environment variable.
	if ov.DevMode == "true" {
		cfg.Storage.Backend = BackendSQLite
		cfg.Storage.Path = "file:./fitcal.db?cache=shared&mode=rwc"
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the %s backend", c.Storage.Backend)
		}
	case BackendLibSQL:
		if c.Storage.URL == "" {
			return errors.New("storage.url (or TURSO_DATABASE_URL) is required for the libsql backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
