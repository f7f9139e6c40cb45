package models

import "time"

// Ticket is a unit of work tracked by the service. Deletion is logical:
// DeletedAt is set, the row stays. UserID is nullable so tickets survive
// their owner being detached.
type Ticket struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	CompletedAt *time.Time `json:"completed_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
	UserID      *int64     `json:"user_id"`
	InProgress  *bool      `json:"in_progress"`
}
