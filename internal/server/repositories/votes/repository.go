package votes

import (
	"context"

	"github.com/evote-app/evote-backend/internal/server/models"
)

// Repository is the append-only ballot store. Ballots are created exactly
// once and never updated or deleted.
type Repository interface {
	Create(ctx context.Context, ballot *models.Ballot) error
	SelectByVoter(ctx context.Context, voterEmail string) ([]*models.Ballot, error)
	SelectAll(ctx context.Context) ([]*models.Ballot, error)
}
