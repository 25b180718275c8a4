package api

import "time"

// Response types mirroring the server's JSON bodies.

type User struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

type Election struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
}

type Candidate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	ElectionID string `json:"electionId"`
}

type BallotReceipt struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type BallotPayload struct {
	Voter     string `json:"user"`
	Election  string `json:"election"`
	Candidate string `json:"candidate"`
}

type CandidateResult struct {
	Candidate string `json:"candidate"`
	Count     int    `json:"count"`
}
