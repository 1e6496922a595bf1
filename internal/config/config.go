// Package config manages the persistent client configuration stored at
// ~/.sap/config.json. Environment variables override individual fields.
package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"

	saperrors "github.com/nepalflora/sap/internal/errors"
)

// DefaultBackendURL is where a locally run Sap backend listens.
const DefaultBackendURL = "http://127.0.0.1:8000"

// Config holds the application configuration
type Config struct {
	BackendURL           string `json:"backend_url"`
	SessionID            string `json:"session_id"`
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "fern", "nord")
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification when an answer arrives
	WelcomeShown         bool   `json:"welcome_shown,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// envOverrides are environment variables that take precedence over the
// values loaded from disk.
type envOverrides struct {
	ConfigDir  string `env:"SAP_CONFIG_DIR"`
	BackendURL string `env:"SAP_BACKEND_URL"`
	SessionID  string `env:"SAP_SESSION_ID"`
}

func parseEnv() (envOverrides, error) {
	var ov envOverrides
	err := env.Parse(&ov)
	return ov, err
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	ov, err := parseEnv()
	if err == nil && ov.ConfigDir != "" {
		return ov.ConfigDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sap"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist.
// A missing session ID is generated and persisted so the backend's
// conversation memory survives client restarts.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BackendURL: DefaultBackendURL,
		filePath:   path,
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, saperrors.ConfigLoadFailed(path, err)
	}
	if err == nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, saperrors.ConfigLoadFailed(path, jsonErr)
		}
	}
	cfg.ensureInitialized()

	ov, envErr := parseEnv()
	if envErr != nil {
		return nil, saperrors.ConfigLoadFailed(path, envErr)
	}
	if ov.BackendURL != "" {
		cfg.BackendURL = ov.BackendURL
	}
	if ov.SessionID != "" {
		cfg.SessionID = ov.SessionID
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Persist a freshly generated session ID (but never one injected
	// through the environment).
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// ensureInitialized fills zero-valued fields after unmarshaling.
//
// Thread-safety: must only be called during single-threaded initialization,
// before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
}

// Validate checks the loaded configuration for obvious mistakes.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return saperrors.ConfigInvalid("backend_url is not a valid URL: " + c.BackendURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return saperrors.ConfigInvalid("backend_url must be http or https: " + c.BackendURL)
	}
	if u.Host == "" {
		return saperrors.ConfigInvalid("backend_url is missing a host: " + c.BackendURL)
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c, "", "  ")
	path := c.filePath
	c.mu.RUnlock()
	if err != nil {
		return saperrors.ConfigSaveFailed(path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return saperrors.ConfigSaveFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return saperrors.ConfigSaveFailed(path, err)
	}
	return nil
}

// GetBackendURL returns the backend base URL
func (c *Config) GetBackendURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BackendURL
}

// SetBackendURL sets the backend base URL
func (c *Config) SetBackendURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BackendURL = u
}

// GetSessionID returns the session ID used for backend conversation memory
func (c *Config) GetSessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SessionID
}

// SetSessionID sets the session ID
func (c *Config) SetSessionID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SessionID = id
}

// GetTheme returns the configured theme name, or empty for the default
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the theme name
func (c *Config) SetTheme(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = name
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetWelcomeShown returns whether the welcome modal has been shown
func (c *Config) GetWelcomeShown() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown records that the welcome modal has been shown
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}
