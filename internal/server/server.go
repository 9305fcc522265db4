// Package server contains the HTTP surface for the subredit API.
package server

import (
	"context"
	"log"
	"time"

	"subredit/internal/config"
	"subredit/internal/featureflags"
	"subredit/internal/middleware"
	"subredit/internal/models"
	"subredit/internal/repository"
	"subredit/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	app             *fiber.App
	promMiddleware  *fiberprometheus.FiberPrometheus
	flags           *featureflags.Manager
	subreditRepo    repository.SubreditRepository
	postRepo        repository.PostRepository
	subreditService *service.SubreditService
	postService     *service.PostService
	rankingService  *service.RankingService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// The bootstrap package establishes DB, Redis and tracing; tests pass their
// own handles.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	middleware.InitMiddleware(cfg)

	subreditRepo := repository.NewSubreditRepository(db)
	postRepo := repository.NewPostRepository(db)

	return &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		promMiddleware:  middleware.InitMetrics("subredit-api"),
		flags:           featureflags.NewManager(cfg.FeatureFlags),
		subreditRepo:    subreditRepo,
		postRepo:        postRepo,
		subreditService: service.NewSubreditService(subreditRepo),
		postService:     service.NewPostService(postRepo, subreditRepo),
		rankingService:  service.NewRankingService(postRepo),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate the request ID into the logger
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// All subredit routes sit behind the token check; token issuance belongs
	// to an external auth service.
	subredits := api.Group("/subredits", middleware.AuthRequired)

	// Per-route write limits can be switched off operationally; the global
	// limiter in SetupMiddleware still applies.
	writeLimit := func(limit int, resource string) fiber.Handler {
		if !s.flags.Enabled("write_rate_limits", 0) {
			return func(c *fiber.Ctx) error { return c.Next() }
		}
		return middleware.RateLimit(s.redis, limit, time.Minute, resource)
	}

	subredits.Get("/", s.RankSubredits)
	subredits.Post("/", writeLimit(5, "create_subredit"), s.CreateSubredit)

	subredits.Get("/:id/posts", s.GetSubreditPosts)
	subredits.Post("/:id/posts", writeLimit(10, "create_post"), s.CreatePost)

	subredits.Post("/:id/posts/:postId/comments",
		writeLimit(30, "create_comment"), s.CreateComment)
	subredits.Put("/:id/posts/:postId", s.UpdatePost)
	subredits.Post("/:id/posts/:postId/like", s.LikePost)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The cache is optional; readiness only requires the database.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Subredit API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
