package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vvitsh/ticketstore/internal/common"
	"github.com/Vvitsh/ticketstore/internal/dbx"
	"github.com/Vvitsh/ticketstore/internal/server/models"
	"github.com/Vvitsh/ticketstore/internal/server/repositories/repomanager"
)

// TicketService implements ticket CRUD plus the two update flavors: a full
// replace where every field is mandatory-or-null, and a tri-state partial
// patch that leaves absent fields untouched.
type TicketService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTicketService constructs a TicketService bound to db.
func NewTicketService(db *sql.DB, m repomanager.RepositoryManager) *TicketService {
	return &TicketService{
		db:          db,
		repomanager: m,
	}
}

// Create persists a new ticket owned by owner.
func (s *TicketService) Create(ctx context.Context, owner *models.User, ticket *models.Ticket) (*models.Ticket, error) {
	ticket.UserID = &owner.ID

	repo := s.repomanager.Tickets(s.db)
	created, err := repo.Create(ctx, ticket)
	if err != nil {
		return nil, fmt.Errorf("error creating ticket: %w", err)
	}
	return created, nil
}

// Get returns a single ticket by id.
func (s *TicketService) Get(ctx context.Context, id int64) (*models.Ticket, error) {
	repo := s.repomanager.Tickets(s.db)
	return repo.GetByID(ctx, id)
}

// List returns all tickets.
func (s *TicketService) List(ctx context.Context) ([]*models.Ticket, error) {
	repo := s.repomanager.Tickets(s.db)
	return repo.List(ctx)
}

// Replace overwrites every mutable field of ticket id with the given record.
// Optional fields the caller left unset arrive as nil and are written as
// null; nothing is carried over from the stored row. The write is a single
// UPDATE scoped by id, so it is atomic without an explicit transaction.
func (s *TicketService) Replace(ctx context.Context, id int64, ticket *models.Ticket) (*models.Ticket, error) {
	ticket.ID = id

	repo := s.repomanager.Tickets(s.db)
	if err := repo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Patch applies a tri-state partial update to ticket id and returns the
// updated record. The read-modify-write runs in a transaction with the row
// locked, so concurrent patches to the same ticket serialize; the later one
// wins field by field. An untouched patch still verifies the ticket exists.
func (s *TicketService) Patch(ctx context.Context, id int64, patch models.TicketPatch) (*models.Ticket, error) {
	var updated *models.Ticket

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tickets(tx)

		ticket, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := patch.Apply(ticket); err != nil {
			return err
		}

		if err := repo.Update(ctx, ticket); err != nil {
			return err
		}

		updated = ticket
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("error patching ticket: %w", err)
	}

	return updated, nil
}
