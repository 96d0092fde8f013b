package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 7600 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 7600)
	}
	if cfg.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus should default to off")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TASKPULSE_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 7600 {
		t.Errorf("Server.Port = %d, want default 7600", cfg.Server.Port)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TASKPULSE_HOME", home)

	cfg := DefaultConfig()
	cfg.Server.Port = 9999
	cfg.Telemetry.Prometheus = true
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Server.Port != 9999 || !loaded.Telemetry.Prometheus {
		t.Errorf("loaded = %+v, want saved values", loaded)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TASKPULSE_HOME", home)

	partial := []byte("[server]\nport = 8123\n")
	if err := os.WriteFile(filepath.Join(home, "config.toml"), partial, 0600); err != nil {
		t.Fatalf("write partial config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8123 {
		t.Errorf("Server.Port = %d, want 8123 from file", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want default kept", cfg.Server.Host)
	}
}
