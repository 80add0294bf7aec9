package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/survey-pdf-service/internal/config"
)

// NewEngine builds the gin engine with recovery, request logging and CORS installed.
func NewEngine(logger zerolog.Logger, corsCfg config.CORSConfig) (*gin.Engine, error) {
	corsMW, err := NewCORS(corsCfg)
	if err != nil {
		return nil, err
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), corsMW)
	return r, nil
}
