package models

import "time"

// Ballot is a persisted encrypted vote. Rows are append-only: a ballot is
// written exactly once on a successful submission and never updated or
// deleted, so the votes table doubles as an audit trail.
//
// EncryptedVote and IV hold the hex-encoded AES-256-CBC ciphertext and the
// per-ballot initialization vector. The IV is freshly random for every
// ballot and never reused, even for the same voter.
type Ballot struct {
	ID            string
	VoterEmail    string
	EncryptedVote string
	IV            string
	CreatedAt     time.Time
}

// BallotPayload is the plaintext of a ballot. The JSON field names and their
// order are part of the at-rest format; the same serialization must be used
// by the submission and tally paths.
//
// Voter duplicates the ballot row's voter column on purpose: read paths
// compare the two as a consistency check, since the cipher itself cannot
// tell one voter's ballot from another's.
type BallotPayload struct {
	Voter     string `json:"user"`
	Election  string `json:"election"`
	Candidate string `json:"candidate"`
}

// CandidateResult is one aggregated tally row.
type CandidateResult struct {
	Candidate string `json:"candidate"`
	Count     int    `json:"count"`
}
