package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/evote-app/evote-backend/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(ctx, "response encoding error", "error", err)
	}
}

// writeError translates a service error into an HTTP status. Unrecognized
// errors are logged and reported as an opaque 500 so internals never leak to
// the client.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, common.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrInvalidLogin),
		errors.Is(err, common.ErrInvalidCode):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, common.ErrAdminsOnly),
		errors.Is(err, common.ErrAdminsCannotVote),
		errors.Is(err, common.ErrEmailNotVerified),
		errors.Is(err, common.ErrElectionNotStarted),
		errors.Is(err, common.ErrElectionOngoing),
		errors.Is(err, common.ErrElectionEnded):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, common.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, common.ErrEmailTaken),
		errors.Is(err, common.ErrAlreadyVoted),
		errors.Is(err, common.ErrTransactionConflict):
		status, message = http.StatusConflict, err.Error()
	default:
		s.logger.Error(ctx, "request failed", "error", err)
	}

	s.writeJSON(ctx, w, status, errorResponse{Error: message})
}

// readJSON decodes the request body into v, rejecting unknown fields.
func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrValidation)
	}
	return nil
}
