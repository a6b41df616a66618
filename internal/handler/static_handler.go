package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/course-service/internal/response"
)

// StaticHandler serves files below a public root for paths no route claims.
type StaticHandler struct {
	root string
}

func NewStaticHandler(root string) *StaticHandler {
	return &StaticHandler{root: root}
}

// Serve answers GET and HEAD with the matching regular file, and everything
// else with a 404 envelope.
func (h *StaticHandler) Serve(c *gin.Context) {
	method := c.Request.Method
	if h.root == "" || (method != http.MethodGet && method != http.MethodHead) {
		h.notFound(c)
		return
	}

	// path.Clean on a rooted path drops any ".." that would climb above root.
	name := filepath.Join(h.root, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
	info, err := os.Stat(name)
	if err != nil || !info.Mode().IsRegular() {
		h.notFound(c)
		return
	}

	c.File(name)
}

func (h *StaticHandler) notFound(c *gin.Context) {
	c.Writer.Header().Del("Cache-Control")
	response.Fail(c, http.StatusNotFound, response.ErrNotFound)
}
