package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/survey-pdf-service/internal/service"
)

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, ready Pinger, docs service.DocumentService) {
	h := NewHealthHandler(ready)

	r.GET(RootPath, h.Root)
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	RegisterDocs(r)

	NewDocumentHandler(docs).Register(r)
}
