package models

import "time"

// Candidate is a person or option running in a single election.
type Candidate struct {
	ID         string
	Name       string
	Party      string
	ElectionID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
