package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/vtree/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	if !strings.HasPrefix(err.Error(), "C001") {
		t.Errorf("Expected C001 error, got: %v", err)
	}

	configJSON := `{
  "server": {
    "host": "0.0.0.0",
    "port": 9090,
    "sessionTimeout": "1m"
  },
  "log": {
    "level": "debug",
    "format": "json"
  },
  "snapshot": {
    "bucket": "snaps",
    "endpoint": "http://localhost:9000",
    "usePathStyle": true
  }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := cfg.Server.Address(); got != "0.0.0.0:9090" {
		t.Errorf("Address = %q", got)
	}
	if cfg.Server.ReadTimeout != "30s" {
		t.Errorf("ReadTimeout default not applied: %q", cfg.Server.ReadTimeout)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v", cfg.Log.SlogLevel())
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should keep its default")
	}
	if cfg.Snapshot.Bucket != "snaps" || !cfg.Snapshot.UsePathStyle || cfg.Snapshot.Region != "us-east-1" {
		t.Errorf("Snapshot = %+v", cfg.Snapshot)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path = %q", cfg.Path())
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(configPath, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	var ve *errors.Error
	if !stderrors.As(err, &ve) || ve.Code != "C001" {
		t.Errorf("Expected C001 error, got: %v", err)
	}
}

func TestLoadFile_InvalidValue(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(configPath, []byte(`{"server": {"port": 70000}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	var ve *errors.Error
	if !stderrors.As(err, &ve) || ve.Code != "C002" {
		t.Fatalf("Expected C002 error, got: %v", err)
	}
	if !strings.Contains(ve.Detail, "server.port") {
		t.Errorf("Detail = %q", ve.Detail)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad duration", func(c *Config) { c.Server.ReadTimeout = "soon" }, "server.readTimeout"},
		{"negative duration", func(c *Config) { c.Server.ShutdownTimeout = "-1s" }, "server.shutdownTimeout"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bucket and dir", func(c *Config) { c.Snapshot.Bucket = "b"; c.Snapshot.Dir = "d" }, "snapshot"},
		{"bucket without region", func(c *Config) { c.Snapshot.Bucket = "b"; c.Snapshot.Region = "" }, "snapshot.region"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.modify(cfg)
			err := cfg.Validate()
			var ve *errors.Error
			if !stderrors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *errors.Error", err)
			}
			if ve.Code != "C002" || !strings.HasPrefix(ve.Detail, tc.field+":") {
				t.Errorf("got %s %q, want field %s", ve.Code, ve.Detail, tc.field)
			}
		})
	}
}

func TestSave(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := New()
	cfg.Server.Port = 9000
	cfg.Snapshot.Dir = "out"

	if err := cfg.Save(); err == nil {
		t.Error("Expected error when saving without path")
	}
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Server.Port != 9000 || loaded.Snapshot.Dir != "out" {
		t.Errorf("loaded = %+v", loaded)
	}
	if err := loaded.Save(); err != nil {
		t.Errorf("Save after load: %v", err)
	}
}

func TestDuration(t *testing.T) {
	if got := Duration("2s", time.Minute); got != 2*time.Second {
		t.Errorf("Duration = %v", got)
	}
	if got := Duration("", time.Minute); got != time.Minute {
		t.Errorf("empty = %v", got)
	}
	if got := Duration("bogus", time.Minute); got != time.Minute {
		t.Errorf("bogus = %v", got)
	}
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		if got := (LogConfig{Level: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
