package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/hearthhq/hearth/pkg/memory"
)

// Server is the API server for managing and querying the memory store
type Server struct {
	config Config
	svc    *memory.Service
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The service is injected to allow sharing with other components
// (e.g., the MCP server when both run in the same process).
func NewServer(config Config, svc *memory.Service, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		svc:    svc,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/memory/stats", s.handleMemoryStats)
	app.Get("/progress", s.handleProgress)
	app.Get("/questions", s.handleListQuestions)
	app.Get("/questions/unanswered", s.handleUnansweredQuestions)
	app.Get("/questions/next", s.handleNextQuestion)
	app.Post("/questions", s.handleAddQuestion)
	app.Delete("/questions/:id", s.handleDeleteQuestion)
	app.Get("/notes/:questionID", s.handleGetNote)
	app.Put("/notes/:questionID", s.handlePutNote)
	app.Delete("/notes/:questionID", s.handleDeleteNote)

	return s
}

// App exposes the underlying fiber app for testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
