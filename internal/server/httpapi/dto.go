package httpapi

import (
	"time"

	"github.com/evote-app/evote-backend/internal/server/models"
)

// Response bodies. Encrypted ballot material is never serialized here; the
// API only ever returns decrypted payloads belonging to the requester.

type userResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
	}
}

type electionResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
}

func toElectionResponse(e *models.Election, now time.Time) electionResponse {
	return electionResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Status:      string(e.StatusAt(now)),
	}
}

type candidateResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	ElectionID string `json:"electionId"`
}

func toCandidateResponse(c *models.Candidate) candidateResponse {
	return candidateResponse{
		ID:         c.ID,
		Name:       c.Name,
		Party:      c.Party,
		ElectionID: c.ElectionID,
	}
}

type ballotReceipt struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
