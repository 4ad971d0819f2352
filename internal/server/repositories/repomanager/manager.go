package repomanager

import (
	"context"
	"database/sql"

	"github.com/jtech/tasklist/internal/dbx"
	"github.com/jtech/tasklist/internal/server/repositories/tasklists"
	"github.com/jtech/tasklist/internal/server/repositories/tasks"
	"github.com/jtech/tasklist/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// them against either the pool or an open transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	TaskLists(db dbx.DBTX) tasklists.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
