package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vijay-prabhu/perfume-finder/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API used by the website.

Routes:
  GET  /health
  GET  /version
  GET  /api/perfumes                 ?gender= &brand= &max_price= &limit=
  GET  /api/perfumes/search          ?q=
  GET  /api/perfumes/:id
  POST /api/recommendations          ?limit=
  POST /api/chat`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d perfumes", cat.Len())

	client := newAssistant(cfg)
	if client.Enabled() {
		log.Printf("Assistant backend: %s", cfg.Assistant.URL)
	} else {
		log.Println("Assistant backend not configured, chat disabled and local recommendations only")
	}

	deps := server.Deps{
		Catalog: cat,
		Service: newRecommendService(cfg, cat, client),
		Chat:    client,
		Version: version,
	}

	db, err := openDatabase(cfg)
	if err != nil {
		log.Printf("Quiz submissions will not be recorded: %v", err)
	} else {
		defer db.Close()
		deps.Store = db
	}

	srv := server.New(cfg, deps)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("Server stopped")
	return nil
}
