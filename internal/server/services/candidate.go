package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evote-app/evote-backend/internal/common"
	"github.com/evote-app/evote-backend/internal/logging"
	"github.com/evote-app/evote-backend/internal/server/models"
	"github.com/evote-app/evote-backend/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CandidateService implements candidate CRUD. Writes are admin-only; reads
// are available to any authenticated user.
type CandidateService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
	now    func() time.Time
}

func NewCandidateService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *CandidateService {
	return &CandidateService{
		db:     db,
		repos:  m,
		logger: logger.With("module", "candidates"),
		now:    time.Now,
	}
}

func (s *CandidateService) requireAdmin(ctx context.Context, actorEmail string) error {
	if actorEmail == "" {
		return common.ErrUnauthorized
	}
	actor, err := s.repos.Users(s.db).GetByEmail(ctx, actorEmail)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		return err
	}
	if !actor.IsAdmin() {
		return common.ErrAdminsOnly
	}
	return nil
}

// Add registers a candidate in an election. Admin only.
func (s *CandidateService) Add(ctx context.Context, actorEmail, electionID, name, party string) (*models.Candidate, error) {
	if err := s.requireAdmin(ctx, actorEmail); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if _, err := s.repos.Elections(s.db).GetByID(ctx, electionID); err != nil {
		return nil, err
	}

	now := s.now()
	candidate := &models.Candidate{
		ID:         uuid.NewString(),
		Name:       name,
		Party:      party,
		ElectionID: electionID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repos.Candidates(s.db).Create(ctx, candidate); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "candidate added", "candidate_id", candidate.ID, "election_id", electionID)
	return candidate, nil
}

// Get returns a single candidate by id.
func (s *CandidateService) Get(ctx context.Context, id string) (*models.Candidate, error) {
	return s.repos.Candidates(s.db).GetByID(ctx, id)
}

// ListByElection returns the candidates running in an election.
func (s *CandidateService) ListByElection(ctx context.Context, electionID string) ([]*models.Candidate, error) {
	return s.repos.Candidates(s.db).SelectByElection(ctx, electionID)
}

// Update renames a candidate or changes their party. Admin only.
func (s *CandidateService) Update(ctx context.Context, actorEmail, electionID, id, name, party string) (*models.Candidate, error) {
	if err := s.requireAdmin(ctx, actorEmail); err != nil {
		return nil, err
	}

	candidate, err := s.repos.Candidates(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if candidate.ElectionID != electionID {
		return nil, common.ErrNotFound
	}

	if name != "" {
		candidate.Name = name
	}
	if party != "" {
		candidate.Party = party
	}
	candidate.UpdatedAt = s.now()

	if err := s.repos.Candidates(s.db).Update(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// Delete removes a candidate from an election. Admin only.
func (s *CandidateService) Delete(ctx context.Context, actorEmail, electionID, id string) error {
	if err := s.requireAdmin(ctx, actorEmail); err != nil {
		return err
	}
	return s.repos.Candidates(s.db).Delete(ctx, electionID, id)
}
