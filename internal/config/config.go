package config

import (
	"os"
	"time"
)

// APIKeyEnv is the environment variable holding the assistant backend API key
const APIKeyEnv = "PERFUME_ASSISTANT_API_KEY"

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Recommend RecommendConfig `toml:"recommend"`
	Assistant AssistantConfig `toml:"assistant"`
	Database  DatabaseConfig  `toml:"database"`
	MCP       MCPConfig       `toml:"mcp"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	GinMode        string   `toml:"gin_mode"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// CatalogConfig points at an optional catalog file replacing the built-in one
type CatalogConfig struct {
	Path string `toml:"path"`
}

// RecommendConfig contains recommendation limits
type RecommendConfig struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

// AssistantConfig contains settings for the external chat backend
type AssistantConfig struct {
	URL               string `toml:"url"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	AIRecommendations bool   `toml:"ai_recommendations"`
	// API key is read from PERFUME_ASSISTANT_API_KEY environment variable
}

// Timeout returns the request timeout as a duration
func (a AssistantConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// APIKey returns the backend API key from the environment
func (a AssistantConfig) APIKey() string {
	return os.Getenv(APIKeyEnv)
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			GinMode:        "release",
			AllowedOrigins: []string{"*"},
		},
		Recommend: RecommendConfig{
			DefaultLimit: 3,
			MaxLimit:     10,
		},
		Assistant: AssistantConfig{
			URL:               "",
			TimeoutSeconds:    30,
			AIRecommendations: true,
		},
		Database: DatabaseConfig{
			Path: "~/.local/share/perfume/perfume.db",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
