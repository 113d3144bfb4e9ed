package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"TABSPLIT_BACKEND", "TABSPLIT_DB_PATH", "TABSPLIT_STORE_KEY", "LOG_LEVEL", "TABSPLIT_SETTLE_DELAY", "TABSPLIT_TOAST_DELAY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.DBPath != "./data/tabs.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.StoreKey != "saved_tabs" {
		t.Errorf("StoreKey = %q, want saved_tabs", cfg.StoreKey)
	}
	if cfg.SettleDelay != 600*time.Millisecond {
		t.Errorf("SettleDelay = %v, want 600ms", cfg.SettleDelay)
	}
	if cfg.ToastDelay != 1500*time.Millisecond {
		t.Errorf("ToastDelay = %v, want 1.5s", cfg.ToastDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TABSPLIT_BACKEND", "memory")
	t.Setenv("TABSPLIT_SETTLE_DELAY", "2s")
	t.Setenv("TABSPLIT_TOAST_DELAY", "not-a-duration")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("Backend = %q, want memory", cfg.Backend)
	}
	if cfg.SettleDelay != 2*time.Second {
		t.Errorf("SettleDelay = %v, want 2s", cfg.SettleDelay)
	}
	if cfg.ToastDelay != 1500*time.Millisecond {
		t.Errorf("invalid duration should fall back to default, got %v", cfg.ToastDelay)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("TABSPLIT_STORE_KEY=from_file\nTABSPLIT_DB_PATH=/tmp/from-file.db\n"), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("TABSPLIT_STORE_KEY", "")
	t.Setenv("TABSPLIT_DB_PATH", "/tmp/from-env.db")
	// godotenv never overrides variables that are already set, so make sure
	// the key is really unset before loading.
	os.Unsetenv("TABSPLIT_STORE_KEY")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StoreKey != "from_file" {
		t.Errorf("StoreKey = %q, want from_file", cfg.StoreKey)
	}
	if cfg.DBPath != "/tmp/from-env.db" {
		t.Errorf("DBPath = %q, environment should win over env file", cfg.DBPath)
	}

	if _, err := Load(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing env file should be ignored: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Backend:     BackendSQLite,
		DBPath:      "./data/tabs.db",
		StoreKey:    "saved_tabs",
		LogLevel:    "info",
		SettleDelay: 600 * time.Millisecond,
		ToastDelay:  1500 * time.Millisecond,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"memory backend without path", func(c *Config) { c.Backend = BackendMemory; c.DBPath = "" }, ""},
		{"unknown backend", func(c *Config) { c.Backend = "postgres" }, "invalid backend"},
		{"sqlite without path", func(c *Config) { c.DBPath = "" }, "database path"},
		{"blank key", func(c *Config) { c.StoreKey = " " }, "store key"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"negative delay", func(c *Config) { c.SettleDelay = -time.Second }, "settle delay"},
		{"huge toast", func(c *Config) { c.ToastDelay = time.Hour }, "toast delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
