package httpapi

import "net/http"

func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ElectionID  string `json:"electionId"`
		CandidateID string `json:"candidateId"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	ballot, err := s.votes.SubmitVote(r.Context(), requestEmail(r), req.ElectionID, req.CandidateID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	// The receipt deliberately excludes the ciphertext and IV.
	s.writeJSON(r.Context(), w, http.StatusCreated, ballotReceipt{
		ID:        ballot.ID,
		CreatedAt: ballot.CreatedAt,
	})
}

func (s *Server) handleMyVotes(w http.ResponseWriter, r *http.Request) {
	payloads, err := s.votes.ListMyVotes(r.Context(), requestEmail(r))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, payloads)
}
