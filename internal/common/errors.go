// Package common defines shared sentinel errors used across the voting
// backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Configuration errors. Fatal at startup, never per-request.
	ErrMissingKeyShare = errors.New("ballot key share is not configured")

	// Identity / authorization.
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrAdminsOnly       = errors.New("access denied, admins only")
	ErrAdminsCannotVote = errors.New("admins are not allowed to vote")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Voting flow.
	ErrElectionNotStarted = errors.New("election has not started yet")
	ErrElectionOngoing    = errors.New("election is ongoing")
	ErrElectionEnded      = errors.New("election has ended")
	ErrAlreadyVoted       = errors.New("already voted in this election")

	// Per-ballot decryption failure. Always recovered locally by skipping
	// the ballot, never surfaced as a request-level error.
	ErrBallotUndecryptable = errors.New("ballot cannot be decrypted")

	// Concurrent write collision. The caller may retry the submission.
	ErrTransactionConflict = errors.New("transaction conflict")

	// Validation / account lifecycle.
	ErrValidation       = errors.New("validation error")
	ErrEmailTaken       = errors.New("email is already in use")
	ErrEmailNotVerified = errors.New("email not verified")
	ErrInvalidCode      = errors.New("invalid verification code")
	ErrInvalidLogin     = errors.New("invalid login id or password")

	// Generic/internal flow control.
	ErrInternal = errors.New("internal error")
)
