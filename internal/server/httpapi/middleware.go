package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/evote-app/evote-backend/internal/common"
	"github.com/evote-app/evote-backend/internal/server/auth"
)

type ctxKey string

const emailKey ctxKey = "email"

// withAuth validates the bearer token and stores the authenticated email in
// the request context.
func (s *Server) withAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(r.Context(), w, common.ErrUnauthorized)
			return
		}

		email, err := auth.GetEmailFromToken(token, s.jwtSecret)
		if err != nil {
			s.writeError(r.Context(), w, err)
			return
		}

		ctx := context.WithValue(r.Context(), emailKey, email)
		next(w, r.WithContext(ctx))
	})
}

// requestEmail returns the authenticated email placed by withAuth.
func requestEmail(r *http.Request) string {
	email, _ := r.Context().Value(emailKey).(string)
	return email
}
