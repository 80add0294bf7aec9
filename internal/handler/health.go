package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/survey-pdf-service/pkg/response"
)

// Pinger is the minimal contract I need from the record store to check readiness.
// I keep it local to the handler package to avoid coupling and simplify tests.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes the root status plus liveness and readiness endpoints.
type HealthHandler struct {
	repo Pinger
}

// NewHealthHandler wires a health handler with its only dependency: something that can Ping.
func NewHealthHandler(repo Pinger) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Root is the unauthenticated status probe existing monitors poll.
func (h *HealthHandler) Root(c *gin.Context) {
	response.WriteData(c, http.StatusOK, gin.H{"status": "API running"})
}

// Liveness responds OK if the process is up; it doesn't check dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	response.WriteData(c, http.StatusOK, gin.H{"status": "alive"})
}

// Readiness reports whether the record store holds anything to serve.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.repo == nil {
		response.WriteData(c, http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "record store not wired"})
		return
	}
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		response.WriteData(c, http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"status": "ready"})
}
