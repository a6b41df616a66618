package middleware

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

type BrotliConfig struct {
	Quality   int
	Skipper   func(c *gin.Context) bool
	MinLength int
}

var DefaultBrotliConfig = BrotliConfig{
	Quality:   brotli.DefaultCompression,
	MinLength: 1024,
}

// brotliWriter buffers the whole body so the encoding decision can be made
// once the final size is known. size counts the uncompressed bytes handlers
// wrote, so loggers running inside the middleware see a real length.
type brotliWriter struct {
	gin.ResponseWriter
	buf         bytes.Buffer
	passthrough bool
	size        int
}

func (bw *brotliWriter) Write(data []byte) (n int, err error) {
	if bw.passthrough {
		n, err = bw.ResponseWriter.Write(data)
	} else {
		n, err = bw.buf.Write(data)
	}
	bw.size += n
	return n, err
}

// Size reports -1 until the handler writes, like gin's own writer.
func (bw *brotliWriter) Size() int {
	if bw.size == 0 {
		return bw.ResponseWriter.Size()
	}
	return bw.size
}

func (bw *brotliWriter) WriteString(s string) (int, error) {
	return bw.Write([]byte(s))
}

// Flush switches the writer to uncompressed pass-through for streaming handlers.
func (bw *brotliWriter) Flush() {
	if !bw.passthrough {
		bw.passthrough = true
		if bw.buf.Len() > 0 {
			_, _ = bw.ResponseWriter.Write(bw.buf.Bytes())
			bw.buf.Reset()
		}
	}
	bw.ResponseWriter.Flush()
}

func (bw *brotliWriter) finish(cfg BrotliConfig) error {
	if bw.passthrough {
		return nil
	}

	body := bw.buf.Bytes()
	header := bw.ResponseWriter.Header()
	if len(body) < cfg.MinLength || header.Get("Content-Encoding") != "" {
		_, err := bw.ResponseWriter.Write(body)
		return err
	}

	header.Set("Content-Encoding", "br")
	header.Del("Content-Length")

	w := brotli.NewWriterLevel(bw.ResponseWriter, cfg.Quality)
	if _, err := w.Write(body); err != nil {
		return err
	}
	return w.Close()
}

func Brotli() gin.HandlerFunc {
	return BrotliWithConfig(DefaultBrotliConfig)
}

func BrotliWithConfig(cfg BrotliConfig) gin.HandlerFunc {
	if cfg.Quality < brotli.BestSpeed || cfg.Quality > brotli.BestCompression {
		cfg.Quality = brotli.DefaultCompression
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultBrotliConfig.MinLength
	}

	return func(c *gin.Context) {
		if shouldSkip(c) || (cfg.Skipper != nil && cfg.Skipper(c)) || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		bw := &brotliWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		defer func() {
			c.Writer = bw.ResponseWriter
			if err := bw.finish(cfg); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Next()
	}
}

// shouldSkip returns true for requests whose responses must stream untouched.
func shouldSkip(c *gin.Context) bool {
	if c.Request.Method == http.MethodHead {
		return true
	}
	if strings.Contains(c.GetHeader("Accept"), "text/event-stream") {
		return true
	}
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		name, _, _ := strings.Cut(enc, ";")
		if strings.EqualFold(strings.TrimSpace(name), "br") {
			return true
		}
	}
	return false
}
