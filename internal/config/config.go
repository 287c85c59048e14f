package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultStorageKey = "messcut_data"
	DefaultOrigin     = "http://localhost:8080"
	cacheDirName      = "cache"
)

// Config holds the unified application configuration
type Config struct {
	DataDir    string
	StorageKey string
	Origin     string
	CacheName  string // empty means the built-in manifest name
}

// Settings represents the config file structure
type Settings struct {
	DataDir    string `json:"data_dir"`
	StorageKey string `json:"storage_key,omitempty"`
	Origin     string `json:"origin,omitempty"`
	CacheName  string `json:"cache_name,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir    string
	StorageKey string
	Origin     string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default.
// A .env file in the working directory is read into the environment first;
// variables already set are not overridden.
func Load(flags CLIFlags) (*Config, error) {
	_ = godotenv.Load()

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:    defaultDir,
		StorageKey: DefaultStorageKey,
		Origin:     DefaultOrigin,
	}

	// Try loading config file first for base values
	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			if fileConfig.DataDir != "" {
				cfg.DataDir = expandPath(fileConfig.DataDir)
			}
			if fileConfig.StorageKey != "" {
				cfg.StorageKey = fileConfig.StorageKey
			}
			if fileConfig.Origin != "" {
				cfg.Origin = fileConfig.Origin
			}
			if fileConfig.CacheName != "" {
				cfg.CacheName = fileConfig.CacheName
			}
		}
	}

	// Priority 2: Environment variables override config file
	if v := os.Getenv("MESSCUT_DATA_DIR"); v != "" {
		cfg.DataDir = expandPath(v)
	}
	if v := os.Getenv("MESSCUT_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
	}
	if v := os.Getenv("MESSCUT_ORIGIN"); v != "" {
		cfg.Origin = v
	}
	if v := os.Getenv("MESSCUT_CACHE_NAME"); v != "" {
		cfg.CacheName = v
	}

	// Priority 1: CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	if flags.StorageKey != "" {
		cfg.StorageKey = flags.StorageKey
	}
	if flags.Origin != "" {
		cfg.Origin = flags.Origin
	}

	cfg.Origin = strings.TrimRight(cfg.Origin, "/")
	return cfg, nil
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "messcut"), nil
}

// getConfigPath returns the path to the configuration file. MESSCUT_CONFIG
// overrides the default location.
func getConfigPath() (string, error) {
	if p := os.Getenv("MESSCUT_CONFIG"); p != "" {
		return expandPath(p), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "messcut", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureDataDir creates the data directory if missing
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// CacheDir returns the directory holding offline asset caches
func (c *Config) CacheDir() string {
	return filepath.Join(c.DataDir, cacheDirName)
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}

	settings := Settings{
		DataDir:    defaultDir,
		StorageKey: DefaultStorageKey,
		Origin:     DefaultOrigin,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
