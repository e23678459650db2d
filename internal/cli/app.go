package cli

import (
	"fmt"

	"github.com/vijay-prabhu/perfume-finder/internal/assistant"
	"github.com/vijay-prabhu/perfume-finder/internal/catalog"
	"github.com/vijay-prabhu/perfume-finder/internal/config"
	"github.com/vijay-prabhu/perfume-finder/internal/database"
	"github.com/vijay-prabhu/perfume-finder/internal/recommend"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadCatalog returns the configured catalog file, or the built-in one
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

func openDatabase(cfg *config.Config) (*database.DB, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newAssistant(cfg *config.Config) *assistant.Client {
	return assistant.New(cfg.Assistant.URL, cfg.Assistant.APIKey(), cfg.Assistant.Timeout())
}

// newRecommendService wires the assistant as provider when AI recommendations are enabled
func newRecommendService(cfg *config.Config, cat *catalog.Catalog, client *assistant.Client) *recommend.Service {
	if cfg.Assistant.AIRecommendations && client.Enabled() {
		return recommend.NewService(cat, client)
	}
	return recommend.NewService(cat, nil)
}
