package users

import (
	"context"

	"github.com/evote-app/evote-backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, email string) error
	SetLoginCredential(ctx context.Context, email, loginID string, salt, verifier []byte) error
	ClearLoginCredential(ctx context.Context, email string) error
}
