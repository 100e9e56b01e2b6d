// Package server exposes the feed over HTTP and a WebSocket event stream.
package server

import (
	"context"
	"log/slog"
	"time"

	"minisocial/internal/config"
	"minisocial/internal/middleware"
	"minisocial/internal/models"
	"minisocial/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const defaultAllowedOrigins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"

// Server holds the feed service and the Fiber app serving it.
type Server struct {
	config         *config.Config
	feed           *service.FeedService
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	started        time.Time
}

// NewServer builds the app with middleware and routes. prom may be nil to
// skip HTTP metrics.
func NewServer(cfg *config.Config, feed *service.FeedService, prom *fiberprometheus.FiberPrometheus) *Server {
	s := &Server{
		config:         cfg,
		feed:           feed,
		promMiddleware: prom,
		started:        time.Now(),
	}

	app := fiber.New(fiber.Config{
		AppName: "Mini Social API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, fe.Code, err)
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
				slog.String("error", err.Error()),
			)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return s
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(app, s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = defaultAllowedOrigins
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Correlation-ID, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        120,
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
	app.Get("/health/live", s.LivenessCheck)

	api := app.Group("/api")
	api.Get("/", s.HealthCheck)

	api.Get("/feed", s.GetFeed)
	api.Put("/feed/sort", s.SetSortMode)
	api.Get("/feedback", s.GetFeedback)

	posts := api.Group("/posts")
	posts.Post("/", s.CreatePost)
	// Specific /:id/:resource routes before the generic /:id route
	posts.Post("/:id/like", s.LikePost)
	posts.Post("/:id/comments", s.CreateComment)
	posts.Delete("/:id", s.DeletePost)

	ws := app.Group("/ws", upgradeRequired)
	ws.Get("/feed", s.FeedStreamHandler())
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// HealthCheck reports service status and feed size.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	view := s.feed.View()
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "minisocial",
		"storage": s.config.StorageBackend,
		"posts":   len(view.Posts),
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

// Start listens on the configured port until the app is shut down.
func (s *Server) Start() error {
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown stops the HTTP server, then the feed timers and event streams.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)
	if err != nil {
		middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
	}
	s.feed.Shutdown()
	middleware.Logger.Info("server shutdown complete")
	return err
}
