// Package candidates provides the candidate repository.
package candidates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evote-app/evote-backend/internal/common"
	"github.com/evote-app/evote-backend/internal/dbx"
	"github.com/evote-app/evote-backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	query := `
		INSERT INTO candidates (id, name, party, election_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		candidate.ID, candidate.Name, candidate.Party, candidate.ElectionID,
		candidate.CreatedAt, candidate.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	query := `
		SELECT id, name, party, election_id, created_at, updated_at
		FROM candidates
		WHERE id = $1
	`
	c := &models.Candidate{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Party, &c.ElectionID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) SelectByElection(ctx context.Context, electionID string) ([]*models.Candidate, error) {
	query := `
		SELECT id, name, party, election_id, created_at, updated_at
		FROM candidates
		WHERE election_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to select candidates: %w", err)
	}
	defer rows.Close()

	var result []*models.Candidate
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.ElectionID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, candidate *models.Candidate) error {
	query := `
		UPDATE candidates
		SET name = $1, party = $2, updated_at = $3
		WHERE id = $4 AND election_id = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		candidate.Name, candidate.Party, candidate.UpdatedAt, candidate.ID, candidate.ElectionID)
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

func (r *PostgresRepository) Delete(ctx context.Context, electionID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1 AND election_id = $2`, id, electionID)
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
