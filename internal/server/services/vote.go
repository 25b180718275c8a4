// Package services contains server-side business logic. This file implements
// VoteService: encrypted ballot submission, the voter's own vote history, and
// the post-election tally.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evote-app/evote-backend/internal/common"
	"github.com/evote-app/evote-backend/internal/cryptox"
	"github.com/evote-app/evote-backend/internal/dbx"
	"github.com/evote-app/evote-backend/internal/logging"
	"github.com/evote-app/evote-backend/internal/server/config"
	"github.com/evote-app/evote-backend/internal/server/models"
	"github.com/evote-app/evote-backend/internal/server/repositories/repomanager"
	"github.com/evote-app/evote-backend/internal/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// VoteService owns the ballot confidentiality pipeline. The composite key is
// derived on demand from the two configured shares; it is never cached or
// stored.
type VoteService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	config *config.Config
	logger logging.Logger
	now    func() time.Time

	// txOptions governs the duplicate-check+insert transaction. Serializable
	// against Postgres; tests running on SQLite (always serializable) relax it.
	txOptions *sql.TxOptions
}

// NewVoteService constructs a VoteService using repositories and server config.
func NewVoteService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *VoteService {
	return &VoteService{
		db:        db,
		repos:     m,
		config:    cfg,
		logger:    logger.With("module", "votes"),
		now:       time.Now,
		txOptions: &sql.TxOptions{Isolation: sql.LevelSerializable},
	}
}

func (s *VoteService) compositeKey() ([]byte, error) {
	return cryptox.DeriveCompositeKey(s.config.KeyShare1, s.config.KeyShare2)
}

// SubmitVote casts a single encrypted ballot for the voter in the given
// election.
//
// The checks run in a fixed order: identity, role, election existence,
// voting window, duplicate. The duplicate scan and the insert execute inside
// one serializable transaction, so two concurrent submissions from the same
// voter for the same election cannot both commit; the loser either observes
// the winner's ballot (ErrAlreadyVoted) or aborts with
// ErrTransactionConflict, which the caller may retry.
//
// Exactly one ballot row is appended on success and none on failure.
func (s *VoteService) SubmitVote(ctx context.Context, voterEmail, electionID, candidateID string) (*models.Ballot, error) {
	if voterEmail == "" {
		return nil, common.ErrUnauthorized
	}
	if electionID == "" || candidateID == "" {
		return nil, fmt.Errorf("%w: election and candidate are required", common.ErrValidation)
	}

	key, err := s.compositeKey()
	if err != nil {
		return nil, err
	}
	defer shared.WipeByteArray(key)

	voter, err := s.repos.Users(s.db).GetByEmail(ctx, voterEmail)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}
	if voter.IsAdmin() {
		return nil, common.ErrAdminsCannotVote
	}

	election, err := s.repos.Elections(s.db).GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	switch election.StatusAt(s.now()) {
	case models.StatusUpcoming:
		return nil, common.ErrElectionNotStarted
	case models.StatusEnded:
		return nil, common.ErrElectionEnded
	}

	var ballot *models.Ballot
	err = dbx.WithTx(ctx, s.db, s.txOptions, func(ctx context.Context, tx dbx.DBTX) error {
		voteRepo := s.repos.Votes(tx)

		prior, err := voteRepo.SelectByVoter(ctx, voterEmail)
		if err != nil {
			return err
		}
		for _, b := range prior {
			payload, ok := s.decodeBallot(ctx, b, key)
			if !ok {
				// An unreadable historical ballot must not block this voter;
				// it is invisible to duplicate detection.
				continue
			}
			if payload.Election == electionID {
				return common.ErrAlreadyVoted
			}
		}

		payload := models.BallotPayload{
			Voter:     voterEmail,
			Election:  electionID,
			Candidate: candidateID,
		}
		encryptedVote, iv, err := cryptox.EncryptBallot(payload, key)
		if err != nil {
			return err
		}

		ballot = &models.Ballot{
			ID:            uuid.NewString(),
			VoterEmail:    voterEmail,
			EncryptedVote: encryptedVote,
			IV:            iv,
			CreatedAt:     s.now(),
		}
		return voteRepo.Create(ctx, ballot)
	})
	if err != nil {
		if isTxConflict(err) {
			return nil, common.ErrTransactionConflict
		}
		return nil, err
	}

	s.logger.Info(ctx, "ballot committed", "ballot_id", ballot.ID)
	return ballot, nil
}

// ListMyVotes decrypts and returns every readable ballot the voter has cast.
// Unreadable ballots are skipped.
func (s *VoteService) ListMyVotes(ctx context.Context, voterEmail string) ([]models.BallotPayload, error) {
	if voterEmail == "" {
		return nil, common.ErrUnauthorized
	}

	key, err := s.compositeKey()
	if err != nil {
		return nil, err
	}
	defer shared.WipeByteArray(key)

	ballots, err := s.repos.Votes(s.db).SelectByVoter(ctx, voterEmail)
	if err != nil {
		return nil, err
	}

	result := make([]models.BallotPayload, 0, len(ballots))
	for _, b := range ballots {
		payload, ok := s.decodeBallot(ctx, b, key)
		if !ok {
			continue
		}
		result = append(result, payload)
	}
	return result, nil
}

// ComputeResults decrypts every ballot in the store and aggregates the count
// per candidate for the given election. Ballots for other elections and
// ballots that fail to decrypt are skipped. Candidates appear in the order
// their first ballot was seen; callers wanting a ranking sort the result.
//
// Election existence and the ended-status requirement are the caller's
// responsibility; an election with no readable ballots simply yields an
// empty result set.
func (s *VoteService) ComputeResults(ctx context.Context, electionID string) ([]models.CandidateResult, error) {
	key, err := s.compositeKey()
	if err != nil {
		return nil, err
	}
	defer shared.WipeByteArray(key)

	ballots, err := s.repos.Votes(s.db).SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, b := range ballots {
		var payload models.BallotPayload
		if err := cryptox.DecryptBallot(b.EncryptedVote, b.IV, key, &payload); err != nil {
			s.logger.Warn(ctx, "skipping undecryptable ballot during tally", "ballot_id", b.ID)
			continue
		}
		if payload.Election != electionID {
			continue
		}
		if _, seen := counts[payload.Candidate]; !seen {
			order = append(order, payload.Candidate)
		}
		counts[payload.Candidate]++
	}

	results := make([]models.CandidateResult, 0, len(order))
	for _, candidate := range order {
		results = append(results, models.CandidateResult{Candidate: candidate, Count: counts[candidate]})
	}
	return results, nil
}

// decodeBallot decrypts one of the voter's own ballots and checks that the
// embedded voter matches the row it was fetched by. Failures are logged and
// reported as not-decodable; they never abort the surrounding scan.
func (s *VoteService) decodeBallot(ctx context.Context, b *models.Ballot, key []byte) (models.BallotPayload, bool) {
	var payload models.BallotPayload
	if err := cryptox.DecryptBallot(b.EncryptedVote, b.IV, key, &payload); err != nil {
		s.logger.Warn(ctx, "skipping undecryptable ballot", "ballot_id", b.ID)
		return models.BallotPayload{}, false
	}
	if payload.Voter != b.VoterEmail {
		s.logger.Warn(ctx, "ballot voter mismatch", "ballot_id", b.ID)
		return models.BallotPayload{}, false
	}
	return payload, true
}

// isTxConflict reports whether err is a serialization failure or deadlock,
// i.e. the transaction lost a race and can be retried.
func isTxConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
