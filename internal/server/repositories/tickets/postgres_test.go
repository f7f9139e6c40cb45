package tickets

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Vvitsh/ticketstore/internal/common"
	"github.com/Vvitsh/ticketstore/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func strPtr(s string) *string { return &s }
func i64Ptr(i int64) *int64   { return &i }

func TestCreate_AssignsID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO tickets .* RETURNING id`).
		WithArgs("Fix bug", "details", nil, nil, nil, int64(3), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	ticket, err := repo.Create(context.Background(), &models.Ticket{
		Title:       "Fix bug",
		Description: strPtr("details"),
		UserID:      i64Ptr(3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.ID != 5 {
		t.Fatalf("expected id 5, got %d", ticket.ID)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM tickets WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByIDForUpdate_LocksRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "description", "priority", "completed_at", "deleted_at", "user_id", "in_progress"}).
		AddRow(int64(5), "Fix bug", nil, "high", nil, nil, int64(3), nil)
	mock.ExpectQuery(`SELECT .* FROM tickets WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	ticket, err := repo.GetByIDForUpdate(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.Priority == nil || *ticket.Priority != "high" {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestList_ScansAllRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "description", "priority", "completed_at", "deleted_at", "user_id", "in_progress"}).
		AddRow(int64(1), "a", nil, nil, nil, nil, nil, nil).
		AddRow(int64(2), "b", "desc", "low", nil, nil, int64(3), true)
	mock.ExpectQuery(`SELECT .* FROM tickets ORDER BY id`).WillReturnRows(rows)

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(list))
	}
	if list[1].Description == nil || *list[1].Description != "desc" {
		t.Fatalf("unexpected second ticket: %+v", list[1])
	}
}

func TestUpdate_WritesAllFieldsAtomically(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE tickets\s+SET title = \$2, description = \$3, priority = \$4, completed_at = \$5,\s+deleted_at = \$6, user_id = \$7, in_progress = \$8\s+WHERE id = \$1`).
		WithArgs(int64(5), "Fix bug", nil, "high", nil, nil, int64(3), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Ticket{
		ID:       5,
		Title:    "Fix bug",
		Priority: strPtr("high"),
		UserID:   i64Ptr(3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdate_MissingTicket(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE tickets`).
		WithArgs(int64(99), "gone", nil, nil, nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Ticket{ID: 99, Title: "gone"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
