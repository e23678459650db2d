package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.Server.Port)
	}

	if cfg.Recommend.DefaultLimit != 3 {
		t.Errorf("expected DefaultLimit=3, got %d", cfg.Recommend.DefaultLimit)
	}

	if cfg.Assistant.URL != "" {
		t.Errorf("expected empty assistant URL, got %s", cfg.Assistant.URL)
	}

	if cfg.MCP.Transport != "stdio" {
		t.Errorf("expected Transport=stdio, got %s", cfg.MCP.Transport)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid server port",
			modify: func(c *Config) {
				c.Server.Port = 0
			},
			wantErr: true,
		},
		{
			name: "invalid gin mode",
			modify: func(c *Config) {
				c.Server.GinMode = "verbose"
			},
			wantErr: true,
		},
		{
			name: "max limit below default",
			modify: func(c *Config) {
				c.Recommend.MaxLimit = 1
			},
			wantErr: true,
		},
		{
			name: "assistant url without scheme",
			modify: func(c *Config) {
				c.Assistant.URL = "chat.example.com"
			},
			wantErr: true,
		},
		{
			name: "valid assistant url",
			modify: func(c *Config) {
				c.Assistant.URL = "https://chat.example.com"
			},
			wantErr: false,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[server]
port = 9090

[recommend]
default_limit = 5
max_limit = 20

[assistant]
url = "http://localhost:7000"
timeout_seconds = 5

[database]
path = "` + filepath.Join(dir, "perfume.db") + `"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected Port=9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.GinMode != "release" {
		t.Errorf("expected default GinMode=release, got %s", cfg.Server.GinMode)
	}
	if cfg.Recommend.DefaultLimit != 5 {
		t.Errorf("expected DefaultLimit=5, got %d", cfg.Recommend.DefaultLimit)
	}
	if cfg.Assistant.Timeout() != 5*time.Second {
		t.Errorf("expected Timeout=5s, got %v", cfg.Assistant.Timeout())
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default Port=8080, got %d", cfg.Server.Port)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected Load() to fail for a missing file")
	}
}

func TestLoadOrDefault_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[server]\nport = 0\n"), 0644)

	if _, err := LoadOrDefault(path); err == nil {
		t.Error("expected validation error for port 0")
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Default()
	expected := "0.0.0.0:8080"

	if got := cfg.ServerAddr(); got != expected {
		t.Errorf("ServerAddr() = %q, want %q", got, expected)
	}
}

func TestAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "from-env")

	if got := Default().Assistant.APIKey(); got != "from-env" {
		t.Errorf("APIKey() = %q, want from-env", got)
	}
}
