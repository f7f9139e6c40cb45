// Package tickets provides the PostgreSQL-backed repository for ticket
// records.
package tickets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vvitsh/ticketstore/internal/common"
	"github.com/Vvitsh/ticketstore/internal/dbx"
	"github.com/Vvitsh/ticketstore/internal/server/models"
)

const ticketColumns = `id, title, description, priority, completed_at, deleted_at, user_id, in_progress`

// PostgresRepository implements ticket storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new ticket and returns it with its assigned id.
func (r *PostgresRepository) Create(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error) {
	query := `
		INSERT INTO tickets (title, description, priority, completed_at, deleted_at, user_id, in_progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		ticket.Title, ticket.Description, ticket.Priority, ticket.CompletedAt,
		ticket.DeletedAt, ticket.UserID, ticket.InProgress).Scan(&ticket.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ticket, nil
}

// GetByID returns the ticket with the given id or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return r.scanTicket(r.db.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate behaves like GetByID but takes a row-level lock, so
// concurrent patches to the same ticket serialize instead of interleaving
// field writes. Must run inside a transaction.
func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1 FOR UPDATE`
	return r.scanTicket(r.db.QueryRowContext(ctx, query, id))
}

// List returns all tickets.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Ticket
	for rows.Next() {
		item := &models.Ticket{}
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.Priority,
			&item.CompletedAt, &item.DeletedAt, &item.UserID, &item.InProgress,
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

// Update writes every mutable field of ticket in a single statement scoped
// by id, so a full replace is atomic without an explicit transaction.
// Returns common.ErrNotFound when no row has the id.
func (r *PostgresRepository) Update(ctx context.Context, ticket *models.Ticket) error {
	query := `
		UPDATE tickets
		SET title = $2, description = $3, priority = $4, completed_at = $5,
		    deleted_at = $6, user_id = $7, in_progress = $8
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		ticket.ID, ticket.Title, ticket.Description, ticket.Priority,
		ticket.CompletedAt, ticket.DeletedAt, ticket.UserID, ticket.InProgress)
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

func (r *PostgresRepository) scanTicket(row *sql.Row) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	err := row.Scan(
		&ticket.ID, &ticket.Title, &ticket.Description, &ticket.Priority,
		&ticket.CompletedAt, &ticket.DeletedAt, &ticket.UserID, &ticket.InProgress,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ticket, nil
}
