package handler

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed openapi.yaml
var openAPISpec []byte

// Minimal HTML that loads Swagger UI from a CDN and points to /openapi.yaml.
//
//go:embed swagger.html
var swaggerHTML []byte

// RegisterDocs mounts documentation endpoints at the root:
//   - GET /openapi.yaml: the API description compiled into the binary
//   - GET /docs: Swagger UI rendering of it
func RegisterDocs(r *gin.Engine) {
	r.GET("/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", openAPISpec)
	})
	r.GET("/docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", swaggerHTML)
	})
}
