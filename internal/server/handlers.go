package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vijay-prabhu/perfume-finder/internal/assistant"
	"github.com/vijay-prabhu/perfume-finder/internal/catalog"
	"github.com/vijay-prabhu/perfume-finder/internal/database"
	"github.com/vijay-prabhu/perfume-finder/internal/recommend"
)

type handler struct {
	catalog      *catalog.Catalog
	service      *recommend.Service
	chat         Chatter
	store        SubmissionStore
	version      string
	defaultLimit int
	maxLimit     int
}

// Dependency states reported by GET /health
const (
	depOK            = "ok"
	depUnavailable   = "unavailable"
	depNotConfigured = "not configured"
)

// health handles GET /health. A failing store or assistant marks the
// service degraded; catalog routes keep working either way.
func (h *handler) health(c *gin.Context) {
	ctx := c.Request.Context()
	status := "healthy"

	store := depNotConfigured
	if h.store != nil {
		store = depOK
		if err := h.store.Health(ctx); err != nil {
			log.Printf("Health check: database: %v", err)
			store = depUnavailable
			status = "degraded"
		}
	}

	chat := depNotConfigured
	if h.chat != nil && h.chat.Enabled() {
		chat = depOK
		if _, err := h.chat.Health(ctx); err != nil {
			log.Printf("Health check: assistant: %v", err)
			chat = depUnavailable
			status = "degraded"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"service":   "perfume-finder",
		"version":   h.version,
		"perfumes":  h.catalog.Len(),
		"database":  store,
		"assistant": chat,
	})
}

// versionInfo handles GET /version
func (h *handler) versionInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": h.version})
}

// listPerfumes handles GET /api/perfumes
func (h *handler) listPerfumes(c *gin.Context) {
	opts := catalog.ListOptions{}

	if g := c.Query("gender"); g != "" {
		gender := catalog.Gender(strings.ToLower(g))
		if !gender.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gender. Must be one of: male, female, unisex"})
			return
		}
		opts.Gender = &gender
	}
	if b := c.Query("brand"); b != "" {
		opts.Brand = &b
	}
	if mp := c.Query("max_price"); mp != "" {
		price, err := strconv.ParseFloat(mp, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
			return
		}
		opts.MaxPrice = &price
	}
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		opts.Limit = n
	}

	perfumes := h.catalog.List(opts)
	if perfumes == nil {
		perfumes = []catalog.Perfume{}
	}
	c.JSON(http.StatusOK, perfumes)
}

// getPerfume handles GET /api/perfumes/:id
func (h *handler) getPerfume(c *gin.Context) {
	perfume, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Perfume not found"})
		return
	}
	c.JSON(http.StatusOK, perfume)
}

// searchPerfumes handles GET /api/perfumes/search?q=
func (h *handler) searchPerfumes(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	perfumes := h.catalog.Search(q)
	if perfumes == nil {
		perfumes = []catalog.Perfume{}
	}
	c.JSON(http.StatusOK, perfumes)
}

// recommend handles POST /api/recommendations
func (h *handler) recommend(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	var survey recommend.Survey
	if err := c.ShouldBindJSON(&survey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	outcome, err := h.service.Recommend(c.Request.Context(), survey, limit)
	if err != nil {
		var verr *recommend.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid survey", "fields": verr.Fields})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recommendations"})
		return
	}

	if h.store != nil {
		if err := h.store.CreateSubmission(c.Request.Context(), newSubmission(survey, outcome)); err != nil {
			log.Printf("Failed to record submission: %v", err)
		}
	}

	c.JSON(http.StatusOK, outcome)
}

// chatMessage handles POST /api/chat
func (h *handler) chatMessage(c *gin.Context) {
	if h.chat == nil || !h.chat.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chat assistant is not configured"})
		return
	}

	var req assistant.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	resp, err := h.chat.Chat(c.Request.Context(), req)
	if err != nil {
		log.Printf("Chat request failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "The assistant is unavailable right now, please try again later"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// newSubmission records the quiz answers and how they were served
func newSubmission(s recommend.Survey, o *recommend.Outcome) *database.Submission {
	prefs := make(map[string]int)
	for name, v := range map[string]*int{
		"sweetness":          s.Preferences.Sweetness,
		"longevity":          s.Preferences.Longevity,
		"sillage":            s.Preferences.Sillage,
		"uniqueness":         s.Preferences.Uniqueness,
		"brandConsciousness": s.Preferences.BrandConsciousness,
	} {
		if v != nil {
			prefs[name] = *v
		}
	}

	return &database.Submission{
		Gender:        string(s.Gender),
		Age:           s.Age,
		Occasion:      string(s.Occasion),
		Budget:        string(s.Budget),
		Preferences:   prefs,
		LikedNotes:    s.LikedNotes,
		DislikedNotes: s.DislikedNotes,
		Source:        string(o.Source),
		ResultCount:   len(o.Recommendations),
	}
}
