package httpapi

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/Vvitsh/ticketstore/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r credentialsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 256)),
	)
}

// ticketRequest is the payload of both create and full replace. Every
// optional field the caller leaves out arrives nil and is stored as null;
// replace never preserves stored values. UserID only matters on replace:
// creation always assigns the authenticated principal as owner.
type ticketRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	CompletedAt *time.Time `json:"completed_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
	UserID      *int64     `json:"user_id"`
	InProgress  *bool      `json:"in_progress"`
}

func (r ticketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
	)
}

func (r ticketRequest) ticket() *models.Ticket {
	return &models.Ticket{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		CompletedAt: r.CompletedAt,
		DeletedAt:   r.DeletedAt,
		UserID:      r.UserID,
		InProgress:  r.InProgress,
	}
}

type attachmentRequest struct {
	FileName string `json:"file_name"`
}

func (r attachmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FileName, validation.Required, validation.Length(1, 255)),
	)
}
