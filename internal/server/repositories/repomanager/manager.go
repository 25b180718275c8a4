package repomanager

import (
	"context"
	"database/sql"

	"github.com/evote-app/evote-backend/internal/dbx"
	"github.com/evote-app/evote-backend/internal/server/repositories/candidates"
	"github.com/evote-app/evote-backend/internal/server/repositories/elections"
	"github.com/evote-app/evote-backend/internal/server/repositories/users"
	"github.com/evote-app/evote-backend/internal/server/repositories/votes"
)

// RepositoryManager vends repositories bound to a DBTX. Passing a *sql.Tx
// yields repositories that participate in that transaction; passing the
// *sql.DB yields autocommit repositories.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Elections(db dbx.DBTX) elections.Repository
	Candidates(db dbx.DBTX) candidates.Repository
	Votes(db dbx.DBTX) votes.Repository
}
