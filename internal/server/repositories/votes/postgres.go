// Package votes provides the ballot repository: an append-only, encrypted
// vote store queryable by voter.
package votes

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/evote-app/evote-backend/internal/dbx"
	"github.com/evote-app/evote-backend/internal/server/models"
)

// PostgresRepository implements ballot storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Binding it to a transaction makes the
// duplicate-check-then-insert sequence atomic.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends one ballot row. There is no update path.
func (r *PostgresRepository) Create(ctx context.Context, ballot *models.Ballot) error {
	query := `
		INSERT INTO votes (id, voter_email, encrypted_vote, iv, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		ballot.ID, ballot.VoterEmail, ballot.EncryptedVote, ballot.IV, ballot.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SelectByVoter returns every ballot the voter has ever cast, oldest first.
// The rows are still encrypted; callers decrypt them.
func (r *PostgresRepository) SelectByVoter(ctx context.Context, voterEmail string) ([]*models.Ballot, error) {
	query := `
		SELECT id, voter_email, encrypted_vote, iv, created_at FROM votes
		WHERE voter_email = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, voterEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to select ballots: %w", err)
	}
	defer rows.Close()

	return scanBallots(rows)
}

// SelectAll returns every ballot in the store, oldest first. The tally has
// to read everything because the election id is only visible after
// decryption.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Ballot, error) {
	query := `
		SELECT id, voter_email, encrypted_vote, iv, created_at FROM votes
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select ballots: %w", err)
	}
	defer rows.Close()

	return scanBallots(rows)
}

func scanBallots(rows *sql.Rows) ([]*models.Ballot, error) {
	var result []*models.Ballot
	for rows.Next() {
		var item models.Ballot
		if err := rows.Scan(
			&item.ID, &item.VoterEmail, &item.EncryptedVote, &item.IV, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
