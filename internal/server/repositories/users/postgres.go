// Package users provides the user account repository.
package users

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

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, role, email_verified, email_verification_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Role,
		user.EmailVerified, user.EmailVerificationCode, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, role, email_verified, email_verification_code,
		       login_id, login_salt, login_verifier, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	user := &models.User{}
	var loginID sql.NullString
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Role,
		&user.EmailVerified, &user.EmailVerificationCode,
		&loginID, &user.LoginSalt, &user.LoginVerifier,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.LoginID = loginID.String
	return user, nil
}

func (r *PostgresRepository) MarkEmailVerified(ctx context.Context, email string) error {
	return r.updateOne(ctx, `
		UPDATE users SET email_verified = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE email = $1
	`, email)
}

// SetLoginCredential stores a freshly issued one-time credential, replacing
// any previous one.
func (r *PostgresRepository) SetLoginCredential(ctx context.Context, email, loginID string, salt, verifier []byte) error {
	return r.updateOne(ctx, `
		UPDATE users SET login_id = $1, login_salt = $2, login_verifier = $3, updated_at = CURRENT_TIMESTAMP
		WHERE email = $4
	`, loginID, salt, verifier, email)
}

// ClearLoginCredential wipes the stored one-time credential after a
// successful login so it cannot be replayed.
func (r *PostgresRepository) ClearLoginCredential(ctx context.Context, email string) error {
	return r.updateOne(ctx, `
		UPDATE users SET login_id = NULL, login_salt = NULL, login_verifier = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE email = $1
	`, email)
}

func (r *PostgresRepository) updateOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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
