// Package httpapi exposes the voting backend over a JSON HTTP API. It maps
// service-level sentinel errors to HTTP status codes and authenticates
// requests with the session token minted at login.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/evote-app/evote-backend/internal/logging"
	"github.com/evote-app/evote-backend/internal/server/services"
)

type Server struct {
	address    string
	users      *services.UserService
	elections  *services.ElectionService
	candidates *services.CandidateService
	votes      *services.VoteService
	logger     logging.Logger
	jwtSecret  []byte
	now        func() time.Time
}

func NewServer(address string, logger logging.Logger, us *services.UserService,
	es *services.ElectionService, cs *services.CandidateService, vs *services.VoteService,
	secretKey string) *Server {
	return &Server{
		address:    address,
		users:      us,
		elections:  es,
		candidates: cs,
		votes:      vs,
		logger:     logger.With("module", "http_server"),
		jwtSecret:  []byte(secretKey),
		now:        time.Now,
	}
}

// Handler builds the route table. Split out of Run so tests can drive the
// full stack through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/verify-email", s.handleVerifyEmail)
	mux.HandleFunc("POST /api/request-login", s.handleRequestLogin)
	mux.HandleFunc("POST /api/validate-login", s.handleValidateLogin)

	mux.Handle("GET /api/me", s.withAuth(s.handleMe))

	mux.Handle("GET /api/elections", s.withAuth(s.handleListElections))
	mux.Handle("POST /api/elections", s.withAuth(s.handleCreateElection))
	mux.Handle("GET /api/elections/{id}", s.withAuth(s.handleGetElection))
	mux.Handle("PUT /api/elections/{id}", s.withAuth(s.handleUpdateElection))
	mux.Handle("DELETE /api/elections/{id}", s.withAuth(s.handleDeleteElection))
	mux.Handle("GET /api/elections/{id}/results", s.withAuth(s.handleElectionResults))

	mux.Handle("GET /api/elections/{id}/candidates", s.withAuth(s.handleListCandidates))
	mux.Handle("POST /api/elections/{id}/candidates", s.withAuth(s.handleAddCandidate))
	mux.Handle("GET /api/candidates/{id}", s.withAuth(s.handleGetCandidate))
	mux.Handle("PUT /api/elections/{id}/candidates/{candidateID}", s.withAuth(s.handleUpdateCandidate))
	mux.Handle("DELETE /api/elections/{id}/candidates/{candidateID}", s.withAuth(s.handleDeleteCandidate))

	mux.Handle("POST /api/votes", s.withAuth(s.handleSubmitVote))
	mux.Handle("GET /api/my-votes", s.withAuth(s.handleMyVotes))

	mux.HandleFunc("GET /api/ping", s.handlePing)

	return mux
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "OK"})
}
