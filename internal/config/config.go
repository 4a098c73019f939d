package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultAPIURL     = "http://127.0.0.1:7433"
	DefaultDBFileName = ".tasklane.db"
	DefaultLogLevel   = "info"

	DefaultSubtaskPageSize        = 10
	DefaultNotificationsListLimit = 50
	DefaultSessionTTL             = 24 * time.Hour

	configFileName           = ".tasklane.toml"
	configDirEnvKey          = "TASKLANE_CONFIG_DIR"
	trustProjectConfigEnvKey = "TASKLANE_TRUST_PROJECT_CONFIG"
)

// SubtasksConfig controls subtask listing.
type SubtasksConfig struct {
	PageSize int `toml:"page_size"`
}

// NotificationsConfig controls notification listing.
type NotificationsConfig struct {
	ListLimit int `toml:"list_limit"`
}

// Config defines runtime configuration for tasklane.
type Config struct {
	APIURL                   string              `toml:"api_url"`
	DBPath                   string              `toml:"db_path"`
	LogLevel                 string              `toml:"log_level"`
	LogFile                  string              `toml:"log_file"`
	SessionTTL               string              `toml:"session_ttl"`
	Subtasks                 SubtasksConfig      `toml:"subtasks"`
	Notifications            NotificationsConfig `toml:"notifications"`
	TrustedProjectConfigPath string              `toml:"-"`
}

// envOverrides are read from TASKLANE_* variables and win over config files.
type envOverrides struct {
	APIURL   string `envconfig:"TASKLANE_API_URL"`
	DBPath   string `envconfig:"TASKLANE_DB"`
	LogLevel string `envconfig:"TASKLANE_LOG_LEVEL"`
	LogFile  string `envconfig:"TASKLANE_LOG_FILE"`
	PageSize int    `envconfig:"TASKLANE_PAGE_SIZE"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:        DefaultAPIURL,
		DBPath:        "",
		LogLevel:      DefaultLogLevel,
		SessionTTL:    DefaultSessionTTL.String(),
		Subtasks:      SubtasksConfig{PageSize: DefaultSubtaskPageSize},
		Notifications: NotificationsConfig{ListLimit: DefaultNotificationsListLimit},
	}
}

// SessionTTLDuration parses session_ttl, falling back to the default when it
// is empty, malformed, or not positive.
func (c *Config) SessionTTLDuration() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.SessionTTL))
	if err != nil || d <= 0 {
		return DefaultSessionTTL
	}
	return d
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

var allowedKeys = []string{
	"api_url",
	"db_path",
	"log_level",
	"log_file",
	"session_ttl",
	"subtasks.page_size",
	"notifications.list_limit",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "db_path":
		return c.DBPath, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_file":
		return c.LogFile, nil
	case "session_ttl":
		return c.SessionTTLDuration().String(), nil
	case "subtasks.page_size":
		return strconv.Itoa(c.Subtasks.PageSize), nil
	case "notifications.list_limit":
		return strconv.Itoa(c.Notifications.ListLimit), nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ProjectPath returns the path to the project config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, configFileName), &cfg); err != nil {
				return nil, err
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, configFileName)
				info, statErr := os.Stat(projectPath)
				switch {
				case statErr == nil && !info.IsDir():
					if err := loadFile(projectPath, &cfg); err != nil {
						return nil, err
					}
					cfg.TrustedProjectConfigPath = projectPath
				case statErr != nil && !os.IsNotExist(statErr):
					return nil, statErr
				}
			}
		}
	}

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if env.APIURL != "" {
		c.APIURL = env.APIURL
	}
	if env.DBPath != "" {
		c.DBPath = env.DBPath
	}
	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
	if env.LogFile != "" {
		c.LogFile = env.LogFile
	}
	if env.PageSize > 0 {
		c.Subtasks.PageSize = env.PageSize
	}
	return nil
}

func (c *Config) normalize() {
	if c.Subtasks.PageSize <= 0 {
		c.Subtasks.PageSize = DefaultSubtaskPageSize
	}
	if c.Notifications.ListLimit <= 0 {
		c.Notifications.ListLimit = DefaultNotificationsListLimit
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "subtasks.page_size", "notifications.list_limit":
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return int64(parsed), nil
	case "session_ttl":
		parsed, err := time.ParseDuration(value)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive duration such as 24h", key)
		}
		return value, nil
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "warning", "error":
			return strings.ToLower(value), nil
		}
		return nil, fmt.Errorf("%s must be one of debug, info, warn, error", key)
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}
