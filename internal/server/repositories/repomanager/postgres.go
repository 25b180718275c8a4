// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/evote-app/evote-backend/internal/dbx"
	"github.com/evote-app/evote-backend/internal/server/migrations"
	"github.com/evote-app/evote-backend/internal/server/repositories/candidates"
	"github.com/evote-app/evote-backend/internal/server/repositories/elections"
	"github.com/evote-app/evote-backend/internal/server/repositories/users"
	"github.com/evote-app/evote-backend/internal/server/repositories/votes"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Elections returns an elections.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Elections(db dbx.DBTX) elections.Repository {
	return elections.NewPostgresRepository(db)
}

// Candidates returns a candidates.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Candidates(db dbx.DBTX) candidates.Repository {
	return candidates.NewPostgresRepository(db)
}

// Votes returns a votes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Votes(db dbx.DBTX) votes.Repository {
	return votes.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
