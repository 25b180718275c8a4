package httpapi

import "net/http"

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	user, err := s.users.Register(r.Context(), req.FirstName, req.LastName, req.Email)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	if err := s.users.VerifyEmail(r.Context(), req.Email, req.Code); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "verified"})
}

func (s *Server) handleRequestLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	if err := s.users.RequestLogin(r.Context(), req.Email); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "credential sent"})
}

func (s *Server) handleValidateLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		LoginID  string `json:"loginId"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	token, user, err := s.users.ValidateLogin(r.Context(), req.Email, req.LoginID, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, struct {
		Token string       `json:"token"`
		User  userResponse `json:"user"`
	}{Token: token, User: toUserResponse(user)})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), requestEmail(r))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, toUserResponse(user))
}
