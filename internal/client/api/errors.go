package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
)

// APIError carries the server's error message alongside a matchable sentinel.
type APIError struct {
	Sentinel error
	Message  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Sentinel.Error()
}

func (e *APIError) Unwrap() error {
	return e.Sentinel
}

// errorFromResponse maps an HTTP error status to a sentinel, keeping the
// server-provided message for display.
func errorFromResponse(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	default:
		sentinel = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return &APIError{Sentinel: sentinel, Message: body.Error}
}
