package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeConfig はテスト用の設定ファイルを一時ディレクトリに作成します。
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shapekit.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// clearEnv は関連する環境変数をテスト中だけ空にします。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvPort, EnvAPIKey, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "secret")
	t.Setenv(EnvPort, "9090")

	cfg, err := NewConfig("")
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}

	want := defaultConfig()
	want.APIKey = "secret"
	want.Port = "9090"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestNewConfigFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
port = "7000"
api_key = "from-file"
log_level = "debug"
log_format = "json"

[canvas]
padding = 4
unit_size = 2.5
title = "demo"
`)

	cfg, err := NewConfig(path)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if cfg.Port != "7000" || cfg.APIKey != "from-file" || cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	// ファイルに無い項目は既定値のまま
	want := CanvasConfig{Padding: 4, UnitSize: 2.5, FontSize: 10, FontFamily: "sans-serif", Title: "demo"}
	if diff := cmp.Diff(want, cfg.Canvas); diff != "" {
		t.Errorf("canvas mismatch (-want +got):\n%s", diff)
	}
}

func TestNewConfigEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
port = "7000"
api_key = "from-file"
`)
	t.Setenv(EnvAPIKey, "from-env")

	cfg, err := NewConfig(path)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("Expected env to override file, got %q", cfg.APIKey)
	}
	if cfg.Port != "7000" {
		t.Errorf("Expected port from file, got %q", cfg.Port)
	}
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "missing api key",
			wantErr: ErrMissingAPIKey,
		},
		{
			name:    "unknown field",
			content: "colour = \"red\"\napi_key = \"k\"\n",
		},
		{
			name:    "invalid toml",
			content: "port = \n",
		},
		{
			name: "bad log format",
			env:  map[string]string{EnvAPIKey: "k", EnvLogFormat: "xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.content != "" {
				path = writeConfig(t, tt.content)
			}

			_, err := NewConfig(path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "k")
	if _, err := NewConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
