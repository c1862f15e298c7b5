// Package httpapi exposes the REST surface: register/login, the owner-scoped
// task routes and a liveness probe. Every task route passes through the
// bearer-token middleware and the owner guard before any service call.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// TaskService is the slice of the task lifecycle the handlers need.
type TaskService interface {
	Create(ctx context.Context, owner, title, description string, completed bool) (*models.Task, error)
	List(ctx context.Context, owner string) ([]*models.Task, error)
	Get(ctx context.Context, owner string, id int64) (*models.Task, error)
	Update(ctx context.Context, owner string, id int64, patch models.TaskPatch) (*models.Task, error)
	ToggleCompletion(ctx context.Context, owner string, id int64) (*models.Task, error)
	Delete(ctx context.Context, owner string, id int64) error
}

// UserService is the slice of account handling the handlers need.
type UserService interface {
	Register(ctx context.Context, email, username, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

type Server struct {
	app       *fiber.App
	address   string
	tasks     TaskService
	users     UserService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, ts TaskService, us UserService, secretKey string) *Server {
	s := &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		tasks:     ts,
		users:     us,
		jwtSecret: []byte(secretKey),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	s.app.Use(recover.New())
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.handleHealth)

	s.app.Post("/auth/register", s.handleRegister)
	s.app.Post("/auth/login", s.handleLogin)

	// The guard chain runs before every task handler: no storage access
	// happens for an unauthenticated caller or a mismatched owner.
	tasks := s.app.Group("/api/:owner/tasks", s.requireAuth, s.requireOwner)
	tasks.Post("/", s.handleCreateTask)
	tasks.Get("/", s.handleListTasks)
	tasks.Get("/:id", s.handleGetTask)
	tasks.Put("/:id", s.handleUpdateTask)
	tasks.Patch("/:id/complete", s.handleToggleCompletion)
	tasks.Delete("/:id", s.handleDeleteTask)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = s.app.ShutdownWithTimeout(5 * time.Second)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}
