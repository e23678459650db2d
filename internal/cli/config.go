package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfume-finder/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Dir(configPath)
	dataDir := filepath.Join(home, ".local", "share", "perfume")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file already exists at %s\n", configPath)
		fmt.Println("Use 'perfume config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Set [assistant].url to your chat backend (optional)")
	fmt.Printf("  2. Export %s or put it in a .env file\n", config.APIKeyEnv)
	fmt.Println("  3. Run 'perfume serve' to start the HTTP API")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err != nil {
		fmt.Println("# No config file found, showing defaults. Run 'perfume config init' to create one.")
	} else {
		fmt.Printf("# Config file: %s\n", configPath)
	}
	fmt.Println()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Print(string(data))

	key := "(not set)"
	if cfg.Assistant.APIKey() != "" {
		key = "(set)"
	}
	fmt.Printf("\n# %s %s\n", config.APIKeyEnv, key)
	return nil
}

const defaultConfig = `# Perfume Finder Configuration

[server]
host = "0.0.0.0"
port = 8080
gin_mode = "release"     # debug, release or test
allowed_origins = ["*"]

[catalog]
# JSON file replacing the built-in catalog; empty uses the built-in one
path = ""

[recommend]
default_limit = 3
max_limit = 10

[assistant]
# Base URL of the chat backend; empty disables chat and AI recommendations
url = ""
timeout_seconds = 30
ai_recommendations = true
# API key read from PERFUME_ASSISTANT_API_KEY env var

[database]
path = "~/.local/share/perfume/perfume.db"

[mcp]
enabled = true
transport = "stdio"
`
