package models

import "time"

// Attachment upload states.
const (
	UploadStatusPending   = "pending"
	UploadStatusCompleted = "completed"
)

// Attachment is server-side metadata for a file associated with a ticket.
// The content itself lives in object storage under StorageKey; clients move
// bytes directly via presigned URLs.
type Attachment struct {
	ID           int64     `json:"id"`
	TicketID     int64     `json:"ticket_id"`
	UserID       int64     `json:"user_id"`
	FileName     string    `json:"file_name"`
	StorageKey   string    `json:"-"`
	UploadStatus string    `json:"upload_status"`
	CreatedAt    time.Time `json:"created_at"`
}
