// Package repomanager ties the per-entity repositories to a database handle
// and owns schema migrations. Services obtain repositories through the
// manager so a *sql.Tx can be swapped in for transactional work.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Vvitsh/ticketstore/internal/dbx"
	"github.com/Vvitsh/ticketstore/internal/server/repositories/attachments"
	"github.com/Vvitsh/ticketstore/internal/server/repositories/tickets"
	"github.com/Vvitsh/ticketstore/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tickets(db dbx.DBTX) tickets.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}
