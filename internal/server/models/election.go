package models

import "time"

// ElectionStatus is the derived phase of an election.
type ElectionStatus string

const (
	StatusUpcoming ElectionStatus = "upcoming"
	StatusOngoing  ElectionStatus = "ongoing"
	StatusEnded    ElectionStatus = "ended"
)

// Election is a voting window with its descriptive metadata.
// StartDate must be strictly before EndDate.
type Election struct {
	ID          string
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatusAt derives the election phase at the given instant. The voting
// window is inclusive on both ends: a ballot cast exactly at StartDate or
// exactly at EndDate is still within the ongoing phase.
func (e *Election) StatusAt(t time.Time) ElectionStatus {
	if t.Before(e.StartDate) {
		return StatusUpcoming
	}
	if t.After(e.EndDate) {
		return StatusEnded
	}
	return StatusOngoing
}
