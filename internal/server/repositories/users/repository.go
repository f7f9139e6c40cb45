package users

import (
	"context"

	"github.com/Vvitsh/ticketstore/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	UpdateToken(ctx context.Context, id int64, token *string) error
}
