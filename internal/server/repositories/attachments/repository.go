package attachments

import (
	"context"

	"github.com/Vvitsh/ticketstore/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error)
	GetByID(ctx context.Context, id int64) (*models.Attachment, error)
	ListByTicket(ctx context.Context, ticketID int64) ([]*models.Attachment, error)
	MarkUploaded(ctx context.Context, id int64) error
}
