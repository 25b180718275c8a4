// Package elections provides the election repository.
package elections

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

func (r *PostgresRepository) Create(ctx context.Context, election *models.Election) error {
	query := `
		INSERT INTO elections (id, title, description, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		election.ID, election.Title, election.Description,
		election.StartDate, election.EndDate, election.CreatedAt, election.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Election, error) {
	query := `
		SELECT id, title, description, start_date, end_date, created_at, updated_at
		FROM elections
		WHERE id = $1
	`
	e := &models.Election{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Election, error) {
	query := `
		SELECT id, title, description, start_date, end_date, created_at, updated_at
		FROM elections
		ORDER BY start_date
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select elections: %w", err)
	}
	defer rows.Close()

	var result []*models.Election
	for rows.Next() {
		var e models.Election
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, election *models.Election) error {
	query := `
		UPDATE elections
		SET title = $1, description = $2, start_date = $3, end_date = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		election.Title, election.Description, election.StartDate, election.EndDate,
		election.UpdatedAt, election.ID)
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

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM elections WHERE id = $1`, id)
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
