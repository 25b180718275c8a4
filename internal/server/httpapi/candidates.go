package httpapi

import "net/http"

type candidateRequest struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

func (s *Server) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	var req candidateRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	candidate, err := s.candidates.Add(r.Context(), requestEmail(r),
		r.PathValue("id"), req.Name, req.Party)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusCreated, toCandidateResponse(candidate))
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.candidates.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, toCandidateResponse(candidate))
}

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.candidates.ListByElection(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	resp := make([]candidateResponse, 0, len(candidates))
	for _, c := range candidates {
		resp = append(resp, toCandidateResponse(c))
	}
	s.writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	var req candidateRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	candidate, err := s.candidates.Update(r.Context(), requestEmail(r),
		r.PathValue("id"), r.PathValue("candidateID"), req.Name, req.Party)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, toCandidateResponse(candidate))
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	err := s.candidates.Delete(r.Context(), requestEmail(r),
		r.PathValue("id"), r.PathValue("candidateID"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "deleted"})
}
