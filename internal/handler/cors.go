package handler

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/survey-pdf-service/internal/config"
)

var allMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

// NewCORS builds the CORS middleware. A "*" origin together with credentials echoes the
// caller's origin, since browsers refuse a literal "*" on credentialed responses.
func NewCORS(cfg config.CORSConfig) (gin.HandlerFunc, error) {
	cc := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if slices.Contains(cc.AllowMethods, "*") || len(cc.AllowMethods) == 0 {
		cc.AllowMethods = allMethods
	}

	switch {
	case slices.Contains(cfg.AllowedOrigins, "*") && cfg.AllowCredentials:
		cc.AllowOriginFunc = func(string) bool { return true }
	case slices.Contains(cfg.AllowedOrigins, "*"):
		cc.AllowAllOrigins = true
	default:
		cc.AllowOrigins = cfg.AllowedOrigins
	}

	if err := cc.Validate(); err != nil {
		return nil, err
	}
	return cors.New(cc), nil
}
