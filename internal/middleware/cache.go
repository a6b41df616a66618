package middleware

import (
	"github.com/gin-gonic/gin"
)

// CacheControl sets the Cache-Control header to directive for every response
// passing through it. Handlers may still override or remove it.
func CacheControl(directive string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", directive)
		c.Next()
	}
}
