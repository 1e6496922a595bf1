package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	saperrors "github.com/nepalflora/sap/internal/errors"
)

// setupConfigDir points SAP_CONFIG_DIR at a temp directory for the test.
func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SAP_CONFIG_DIR", dir)
	t.Setenv("SAP_BACKEND_URL", "")
	t.Setenv("SAP_SESSION_ID", "")
	return dir
}

func TestLoad_CreatesDefaults(t *testing.T) {
	dir := setupConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.GetBackendURL() != DefaultBackendURL {
		t.Errorf("BackendURL = %q, want %q", cfg.GetBackendURL(), DefaultBackendURL)
	}
	if cfg.GetSessionID() == "" {
		t.Error("expected a generated session ID")
	}

	// The generated session ID must have been persisted
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	var onDisk map[string]interface{}
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("config file is not valid JSON: %v", err)
	}
	if onDisk["session_id"] != cfg.GetSessionID() {
		t.Errorf("persisted session_id = %v, want %q", onDisk["session_id"], cfg.GetSessionID())
	}
}

func TestLoad_SessionIDStableAcrossLoads(t *testing.T) {
	setupConfigDir(t)

	first, err := Load()
	if err != nil {
		t.Fatalf("first Load() failed: %v", err)
	}
	second, err := Load()
	if err != nil {
		t.Fatalf("second Load() failed: %v", err)
	}

	if first.GetSessionID() != second.GetSessionID() {
		t.Errorf("session ID changed between loads: %q vs %q", first.GetSessionID(), second.GetSessionID())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setupConfigDir(t)
	t.Setenv("SAP_BACKEND_URL", "http://backend.example:9000")
	t.Setenv("SAP_SESSION_ID", "pinned-session")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.GetBackendURL() != "http://backend.example:9000" {
		t.Errorf("BackendURL = %q, want env override", cfg.GetBackendURL())
	}
	if cfg.GetSessionID() != "pinned-session" {
		t.Errorf("SessionID = %q, want %q", cfg.GetSessionID(), "pinned-session")
	}

	// An env-injected session ID must not be written to disk
	data, err := os.ReadFile(filepath.Join(os.Getenv("SAP_CONFIG_DIR"), "config.json"))
	if err == nil {
		var onDisk map[string]interface{}
		if err := json.Unmarshal(data, &onDisk); err == nil {
			if onDisk["session_id"] == "pinned-session" {
				t.Error("env session ID leaked into the config file")
			}
		}
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	setupConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	cfg.SetBackendURL("http://10.0.0.5:8000")
	cfg.SetTheme("nord")
	cfg.SetNotificationsEnabled(true)
	cfg.MarkWelcomeShown()
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.GetBackendURL() != "http://10.0.0.5:8000" {
		t.Errorf("BackendURL = %q after reload", loaded.GetBackendURL())
	}
	if loaded.GetTheme() != "nord" {
		t.Errorf("Theme = %q after reload, want %q", loaded.GetTheme(), "nord")
	}
	if !loaded.GetNotificationsEnabled() {
		t.Error("NotificationsEnabled not persisted")
	}
	if !loaded.GetWelcomeShown() {
		t.Error("WelcomeShown not persisted")
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := setupConfigDir(t)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for corrupt config file")
	}
	if !saperrors.Is(err, saperrors.KindConfig) {
		t.Errorf("error kind = %v, want KindConfig", saperrors.GetKind(err))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid http", "http://127.0.0.1:8000", false},
		{"valid https", "https://sap.example.com", false},
		{"missing scheme", "127.0.0.1:8000", true},
		{"bad scheme", "ftp://host", true},
		{"missing host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{BackendURL: tt.url}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
