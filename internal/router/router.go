package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-service/internal/config"
	"github.com/stemsi/course-service/internal/handler"
	"github.com/stemsi/course-service/internal/middleware"
	"github.com/stemsi/course-service/internal/view"
)

// staticMaxAge is the Cache-Control directive for files under the public root.
const staticMaxAge = "public, max-age=3600"

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Course *handler.CourseHandler
	Page   *handler.PageHandler
	Static *handler.StaticHandler
	System *handler.SystemHandler
}

// SetupRouter configures the Gin engine, its global middlewares and every route.
// It returns an error only when the embedded views fail to parse.
func SetupRouter(handlers *Handlers, cfg *config.Config, log zerolog.Logger) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	// A trailing slash reaches the same handler instead of a 301.
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())

	tmpl, err := view.Load()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	// Request ID first so every later middleware and response can use it.
	router.Use(middleware.RequestID())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{middleware.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.SecurityHeaders())

	if cfg.CompressionEnabled {
		router.Use(middleware.Brotli())
	}

	router.Use(
		middleware.RequestLogger(log),
		middleware.Authenticate(cfg.AuthJWTSecret, log),
	)
	if cfg.IsDevelopment() {
		router.Use(middleware.AccessLog(log))
	}

	// Health check.
	router.GET("/health", handlers.System.Health)

	// ─── Pages ─────────────────────────────────────────────────────────
	router.GET("/", handlers.Page.Index)

	// ─── Courses API ───────────────────────────────────────────────────
	api := router.Group("/api")
	api.Use(middleware.CacheControl("no-store"))
	if cfg.RateLimitPerMinute > 0 {
		api.Use(middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute).Middleware())
	}

	courses := api.Group("/courses")
	for _, path := range []string{"", "/"} {
		courses.GET(path, handlers.Course.List)
		courses.POST(path, handlers.Course.Create)
		courses.GET("/:id"+path, handlers.Course.Get)
		courses.PUT("/:id"+path, handlers.Course.Update)
		courses.DELETE("/:id"+path, handlers.Course.Delete)
	}

	// ─── Static files ──────────────────────────────────────────────────
	// Anything unrouted is looked up under the public root.
	router.NoRoute(middleware.CacheControl(staticMaxAge), handlers.Static.Serve)

	return router, nil
}
