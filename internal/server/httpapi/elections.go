package httpapi

import (
	"net/http"
	"time"
)

type electionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	var req electionRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	election, err := s.elections.Create(r.Context(), requestEmail(r),
		req.Title, req.Description, req.StartDate, req.EndDate)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusCreated, toElectionResponse(election, s.now()))
}

func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := s.elections.List(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	now := s.now()
	resp := make([]electionResponse, 0, len(elections))
	for _, e := range elections {
		resp = append(resp, toElectionResponse(e, now))
	}
	s.writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	election, err := s.elections.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, toElectionResponse(election, s.now()))
}

func (s *Server) handleUpdateElection(w http.ResponseWriter, r *http.Request) {
	var req electionRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	election, err := s.elections.Update(r.Context(), requestEmail(r), r.PathValue("id"),
		req.Title, req.Description, req.StartDate, req.EndDate)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, toElectionResponse(election, s.now()))
}

func (s *Server) handleDeleteElection(w http.ResponseWriter, r *http.Request) {
	if err := s.elections.Delete(r.Context(), requestEmail(r), r.PathValue("id")); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleElectionResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.elections.Results(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, results)
}
