package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server wraps the Fiber application serving the tool API.
type Server struct {
	app      *fiber.App
	logger   *zap.Logger
	endpoint string
}

// NewServer constructs the HTTP server with health and metrics endpoints
// registered.
func NewServer(port int, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return &Server{
		app:      app,
		logger:   logger,
		endpoint: fmt.Sprintf(":%d", port),
	}
}

// RegisterTools mounts the tool dispatcher under /v1/tools, protected by the
// given auth middleware.
func (s *Server) RegisterTools(h *ToolHandler, authMiddleware fiber.Handler) {
	v1 := s.app.Group("/v1", authMiddleware)
	v1.Get("/tools", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{"tools": h.Names()})
	})
	v1.Post("/tools/:name", h.Dispatch)
}

// Start serves until Stop is called. It blocks.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("endpoint", s.endpoint))
	return s.app.Listen(s.endpoint)
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if err := s.app.Shutdown(); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
