package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/survey-pdf-service/internal/service"
	"github.com/maxviazov/survey-pdf-service/pkg/response"
)

type DocumentHandler struct {
	svc service.DocumentService
}

func NewDocumentHandler(svc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) Register(r gin.IRoutes) {
	r.GET(DocumentPath, h.get)
	r.HEAD(DocumentPath, h.get)
}

// get streams the PDF for ?state=&guid=&api_key=. http.ServeFile underneath handles
// Range, HEAD and conditional requests.
func (h *DocumentHandler) get(c *gin.Context) {
	state, hasState := c.GetQuery("state")
	guid, hasGUID := c.GetQuery("guid")
	doc, err := h.svc.Fetch(c.Request.Context(), service.DocumentRequest{
		State:        state,
		GUID:         guid,
		APIKey:       c.Query("api_key"),
		MissingState: !hasState,
		MissingGUID:  !hasGUID,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	// Set before serving so ServeFile doesn't sniff the type.
	c.Header("Content-Type", doc.ContentType)
	c.FileAttachment(doc.Path, doc.FileName)
}
