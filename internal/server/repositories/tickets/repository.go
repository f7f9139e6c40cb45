package tickets

import (
	"context"

	"github.com/Vvitsh/ticketstore/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error)
	GetByID(ctx context.Context, id int64) (*models.Ticket, error)
	// GetByIDForUpdate locks the row for the remainder of the enclosing
	// transaction. Only meaningful on a repository bound to a *sql.Tx.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Ticket, error)
	List(ctx context.Context) ([]*models.Ticket, error)
	Update(ctx context.Context, ticket *models.Ticket) error
}
