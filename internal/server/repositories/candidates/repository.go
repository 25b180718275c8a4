package candidates

import (
	"context"

	"github.com/evote-app/evote-backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	GetByID(ctx context.Context, id string) (*models.Candidate, error)
	SelectByElection(ctx context.Context, electionID string) ([]*models.Candidate, error)
	Update(ctx context.Context, candidate *models.Candidate) error
	Delete(ctx context.Context, electionID, id string) error
}
