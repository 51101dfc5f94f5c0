package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-parser/internal/core/cache"
	"recipe-parser/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the /health body.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     *cache.Stats           `json:"cache,omitempty"`
}

// Handler serves the health endpoints.
type Handler struct {
	cfg          *config.Config
	cacheManager *cache.Manager
}

// NewHandler creates the health handler.
func NewHandler(cfg *config.Config, cacheManager *cache.Manager) *Handler {
	return &Handler{cfg: cfg, cacheManager: cacheManager}
}

// HealthCheck reports service status plus runtime and cache counters.
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if h.cacheManager != nil {
		stats := h.cacheManager.Snapshot()
		response.Cache = &stats
	}

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck reports readiness.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck reports liveness.
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
