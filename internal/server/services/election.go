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

// Tallier computes per-candidate counts for one election. VoteService is the
// production implementation.
type Tallier interface {
	ComputeResults(ctx context.Context, electionID string) ([]models.CandidateResult, error)
}

// ElectionService implements election CRUD (admin-only writes) and the
// results endpoint semantics: results exist only after the election ends.
type ElectionService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	tally  Tallier
	logger logging.Logger
	now    func() time.Time
}

func NewElectionService(db *sql.DB, m repomanager.RepositoryManager, tally Tallier, logger logging.Logger) *ElectionService {
	return &ElectionService{
		db:     db,
		repos:  m,
		tally:  tally,
		logger: logger.With("module", "elections"),
		now:    time.Now,
	}
}

// requireAdmin loads the actor and rejects non-admins.
func (s *ElectionService) requireAdmin(ctx context.Context, actorEmail string) error {
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

// Create validates and persists a new election. Admin only.
func (s *ElectionService) Create(ctx context.Context, actorEmail, title, description string, startDate, endDate time.Time) (*models.Election, error) {
	if err := s.requireAdmin(ctx, actorEmail); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if startDate.IsZero() || endDate.IsZero() || !startDate.Before(endDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", common.ErrValidation)
	}

	now := s.now()
	election := &models.Election{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repos.Elections(s.db).Create(ctx, election); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "election created", "election_id", election.ID)
	return election, nil
}

// List returns all elections, soonest first.
func (s *ElectionService) List(ctx context.Context) ([]*models.Election, error) {
	return s.repos.Elections(s.db).SelectAll(ctx)
}

// Get returns a single election by id.
func (s *ElectionService) Get(ctx context.Context, id string) (*models.Election, error) {
	return s.repos.Elections(s.db).GetByID(ctx, id)
}

// Update applies partial changes to an election. Empty/zero fields keep their
// stored values. Admin only.
func (s *ElectionService) Update(ctx context.Context, actorEmail, id, title, description string, startDate, endDate time.Time) (*models.Election, error) {
	if err := s.requireAdmin(ctx, actorEmail); err != nil {
		return nil, err
	}

	election, err := s.repos.Elections(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title != "" {
		election.Title = title
	}
	if description != "" {
		election.Description = description
	}
	if !startDate.IsZero() {
		election.StartDate = startDate
	}
	if !endDate.IsZero() {
		election.EndDate = endDate
	}
	if !election.StartDate.Before(election.EndDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", common.ErrValidation)
	}
	election.UpdatedAt = s.now()

	if err := s.repos.Elections(s.db).Update(ctx, election); err != nil {
		return nil, err
	}
	return election, nil
}

// Delete removes an election. Admin only.
func (s *ElectionService) Delete(ctx context.Context, actorEmail, id string) error {
	if err := s.requireAdmin(ctx, actorEmail); err != nil {
		return err
	}
	if err := s.repos.Elections(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "election deleted", "election_id", id)
	return nil
}

// Results returns the tally for an ended election. Upcoming and ongoing
// elections have no results yet; the distinction between the two is kept so
// the caller can report a precise reason.
func (s *ElectionService) Results(ctx context.Context, electionID string) ([]models.CandidateResult, error) {
	election, err := s.repos.Elections(s.db).GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}

	switch election.StatusAt(s.now()) {
	case models.StatusUpcoming:
		return nil, common.ErrElectionNotStarted
	case models.StatusOngoing:
		return nil, common.ErrElectionOngoing
	}

	return s.tally.ComputeResults(ctx, electionID)
}
