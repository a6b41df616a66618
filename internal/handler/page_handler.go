package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/course-service/internal/view"
)

const (
	indexTitle   = "My Express App"
	indexMessage = "hello"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Index godoc
// GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, view.Index, gin.H{
		"title":   indexTitle,
		"message": indexMessage,
	})
}
