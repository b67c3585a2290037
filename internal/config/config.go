// Package config resolves the archive database path from flags, the
// environment, and the global configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mwhitt/arc/internal/archive"
)

// GlobalConfig represents configuration stored in ~/.config/arc/config.yml.
type GlobalConfig struct {
	DatabasePath string `yaml:"database_path,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "arc"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// EnvDatabasePath is the environment variable overriding the database
	// path. It may be set in a .env file in the working directory.
	EnvDatabasePath = "ARC_DB"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/arc/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.DatabasePath != "" {
		cfg.DatabasePath = ExpandPath(cfg.DatabasePath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// ResolveDatabasePath determines the archive document path. Precedence:
// the flag value, the ARC_DB environment variable (a .env file in the
// working directory is honored), database_path in the global config, and
// finally archive_db.json in the working directory.
func ResolveDatabasePath(flagValue string) (string, error) {
	if flagValue != "" {
		return ExpandPath(flagValue), nil
	}

	_ = godotenv.Load()
	if env := os.Getenv(EnvDatabasePath); env != "" {
		return ExpandPath(env), nil
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if cfg.DatabasePath != "" {
		return cfg.DatabasePath, nil
	}

	return archive.DefaultDatabaseFile, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
