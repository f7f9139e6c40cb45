// Package attachments provides the PostgreSQL-backed repository for ticket
// attachment metadata. The attachment payloads themselves live in object
// storage.
package attachments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vvitsh/ticketstore/internal/common"
	"github.com/Vvitsh/ticketstore/internal/dbx"
	"github.com/Vvitsh/ticketstore/internal/server/models"
)

// PostgresRepository implements attachment storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts attachment metadata in the pending state.
func (r *PostgresRepository) Create(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error) {
	query := `
		INSERT INTO attachments (ticket_id, user_id, file_name, storage_key, upload_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		attachment.TicketID, attachment.UserID, attachment.FileName,
		attachment.StorageKey, attachment.UploadStatus).Scan(&attachment.ID, &attachment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return attachment, nil
}

// GetByID returns the attachment with the given id or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Attachment, error) {
	query := `
		SELECT id, ticket_id, user_id, file_name, storage_key, upload_status, created_at
		FROM attachments
		WHERE id = $1
	`
	attachment := &models.Attachment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&attachment.ID, &attachment.TicketID, &attachment.UserID, &attachment.FileName,
		&attachment.StorageKey, &attachment.UploadStatus, &attachment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return attachment, nil
}

// ListByTicket returns all attachments recorded for ticketID.
func (r *PostgresRepository) ListByTicket(ctx context.Context, ticketID int64) ([]*models.Attachment, error) {
	query := `
		SELECT id, ticket_id, user_id, file_name, storage_key, upload_status, created_at
		FROM attachments
		WHERE ticket_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Attachment
	for rows.Next() {
		item := &models.Attachment{}
		if err := rows.Scan(
			&item.ID, &item.TicketID, &item.UserID, &item.FileName,
			&item.StorageKey, &item.UploadStatus, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkUploaded flips the attachment to the completed state once the client
// has finished its presigned PUT.
func (r *PostgresRepository) MarkUploaded(ctx context.Context, id int64) error {
	query := `
		UPDATE attachments SET upload_status = $2
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, models.UploadStatusCompleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
