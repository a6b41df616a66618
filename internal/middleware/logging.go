package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-service/internal/response"
)

// RequestLogger writes one structured debug line per request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "http").Logger()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug().
			Str("request_id", response.RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Str("subject", c.GetString(ContextKeySubject)).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}

// AccessLog writes a compact one-line access record per request:
// "METHOD URL STATUS LENGTH - MILLIS ms". It is meant for development.
func AccessLog(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "access").Logger()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		length := "-"
		if size := c.Writer.Size(); size >= 0 {
			length = strconv.Itoa(size)
		}
		elapsed := float64(time.Since(start).Microseconds()) / 1000

		log.Info().Msgf("%s %s %d %s - %.3f ms",
			c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), length, elapsed)
	}
}
