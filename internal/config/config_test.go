package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"APIRPC_LOG_LEVEL", "APIRPC_CODEC", "APIRPC_REQUEST_FILE", "APIRPC_PRINT_CATALOG"} {
		// t.Setenv restores the original value when the test ends.
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("config:config_test - unexpected error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("config:config_test - LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Codec != "json" {
		t.Errorf("config:config_test - Codec = %q, want json", cfg.Codec)
	}
	if cfg.RequestFile != "" {
		t.Errorf("config:config_test - RequestFile = %q, want empty", cfg.RequestFile)
	}
	if !cfg.PrintCatalog {
		t.Error("config:config_test - expected PrintCatalog=true by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APIRPC_LOG_LEVEL", "debug")
	t.Setenv("APIRPC_CODEC", "cbor")
	t.Setenv("APIRPC_REQUEST_FILE", "/tmp/request.json")
	t.Setenv("APIRPC_PRINT_CATALOG", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("config:config_test - unexpected error: %v", err)
	}
	level, err := cfg.Level()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("config:config_test - Level() = %v, %v; want debug", level, err)
	}
	codec, err := cfg.EnvelopeCodec()
	if err != nil || codec.Name() != "cbor" {
		t.Errorf("config:config_test - EnvelopeCodec() = %q, %v; want cbor", codec.Name(), err)
	}
	if cfg.RequestFile != "/tmp/request.json" {
		t.Errorf("config:config_test - RequestFile = %q", cfg.RequestFile)
	}
	if cfg.PrintCatalog {
		t.Error("config:config_test - expected PrintCatalog=false")
	}
}

func TestLoadFromDotenv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("APIRPC_CODEC=cbor\nAPIRPC_LOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// Variables already set win over dotenv values.
	t.Setenv("APIRPC_LOG_LEVEL", "error")
	t.Cleanup(func() { os.Unsetenv("APIRPC_CODEC") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("config:config_test - unexpected error: %v", err)
	}
	if cfg.Codec != "cbor" {
		t.Errorf("config:config_test - Codec = %q, want cbor", cfg.Codec)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("config:config_test - LogLevel = %q, want error", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{"codec", map[string]string{"APIRPC_CODEC": "xml"}, "APIRPC_CODEC"},
		{"log level", map[string]string{"APIRPC_LOG_LEVEL": "loud"}, "APIRPC_LOG_LEVEL"},
		{"bool", map[string]string{"APIRPC_PRINT_CATALOG": "maybe"}, "PRINT_CATALOG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			if err == nil {
				t.Fatal("config:config_test - expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("config:config_test - error %q does not mention %s", err, tt.wantMsg)
			}
		})
	}
}
