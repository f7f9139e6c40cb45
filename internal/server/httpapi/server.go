// Package httpapi exposes the service over HTTP/JSON: registration and
// login, the bearer-token guard, ticket CRUD with full-replace and partial
// patch, and attachment upload negotiation.
package httpapi

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/Vvitsh/ticketstore/internal/logging"
	"github.com/Vvitsh/ticketstore/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address     string
	logger      logging.Logger
	db          *sql.DB
	users       *services.UserService
	tickets     *services.TicketService
	attachments *services.AttachmentService
}

func NewServer(address string, l logging.Logger, db *sql.DB,
	us *services.UserService, ts *services.TicketService, as *services.AttachmentService) *Server {
	return &Server{
		address:     address,
		logger:      l.With("module", "http_server"),
		db:          db,
		users:       us,
		tickets:     ts,
		attachments: as,
	}
}

func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	app.Use(cors.New())

	app.Get("/health", s.handleHealth)

	app.Post("/users", s.handleRegister)
	app.Post("/users/login", s.handleLogin)
	app.Post("/users/logout", s.authGuard, s.handleLogout)

	tickets := app.Group("/tickets")
	tickets.Get("/", s.handleListTickets)
	tickets.Post("/", s.authGuard, s.handleCreateTicket)
	tickets.Get("/:id", s.handleGetTicket)
	tickets.Put("/:id", s.authGuard, s.handleReplaceTicket)
	tickets.Patch("/:id", s.authGuard, s.handlePatchTicket)

	tickets.Post("/:id/attachments", s.authGuard, s.handleRequestAttachmentUpload)
	tickets.Get("/:id/attachments", s.authGuard, s.handleListAttachments)
	tickets.Post("/:id/attachments/:attachmentID/complete", s.authGuard, s.handleCompleteAttachmentUpload)

	return app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	app := s.newApp()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return app.Listen(s.address)
}
