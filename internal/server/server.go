package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vijay-prabhu/perfume-finder/internal/assistant"
	"github.com/vijay-prabhu/perfume-finder/internal/catalog"
	"github.com/vijay-prabhu/perfume-finder/internal/config"
	"github.com/vijay-prabhu/perfume-finder/internal/database"
	"github.com/vijay-prabhu/perfume-finder/internal/recommend"
)

// Chatter proxies chat messages to the perfume assistant
type Chatter interface {
	Enabled() bool
	Health(ctx context.Context) (*assistant.HealthResponse, error)
	Chat(ctx context.Context, req assistant.ChatRequest) (*assistant.ChatResponse, error)
}

// SubmissionStore persists completed quizzes
type SubmissionStore interface {
	Health(ctx context.Context) error
	CreateSubmission(ctx context.Context, s *database.Submission) error
}

// Deps are the collaborators the HTTP API is built from.
// Chat and Store may be nil.
type Deps struct {
	Catalog *catalog.Catalog
	Service *recommend.Service
	Chat    Chatter
	Store   SubmissionStore
	Version string
}

// Server is the HTTP API
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
}

// New builds the router and the underlying http.Server
func New(cfg *config.Config, deps Deps) *Server {
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.GinMode != gin.ReleaseMode {
		router.Use(gin.Logger())
	}

	corsConfig := cors.DefaultConfig()
	if containsWildcard(cfg.Server.AllowedOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	h := &handler{
		catalog:      deps.Catalog,
		service:      deps.Service,
		chat:         deps.Chat,
		store:        deps.Store,
		version:      deps.Version,
		defaultLimit: cfg.Recommend.DefaultLimit,
		maxLimit:     cfg.Recommend.MaxLimit,
	}

	router.GET("/health", h.health)
	router.GET("/version", h.versionInfo)

	api := router.Group("/api")
	{
		api.GET("/perfumes", h.listPerfumes)
		api.GET("/perfumes/search", h.searchPerfumes)
		api.GET("/perfumes/:id", h.getPerfume)
		api.POST("/recommendations", h.recommend)
		api.POST("/chat", h.chatMessage)
	}

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:    cfg.ServerAddr(),
			Handler: router,
		},
	}
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run listens until the server is shut down
func (s *Server) Run() error {
	log.Printf("Starting server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}
