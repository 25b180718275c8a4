package elections

import (
	"context"

	"github.com/evote-app/evote-backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, election *models.Election) error
	GetByID(ctx context.Context, id string) (*models.Election, error)
	SelectAll(ctx context.Context) ([]*models.Election, error)
	Update(ctx context.Context, election *models.Election) error
	Delete(ctx context.Context, id string) error
}
