// Package api implements the HTTP client for the voting backend. It wraps
// the JSON endpoints in typed methods and keeps the session token between
// calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken installs the session token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken drops the session token.
func (c *Client) ClearToken() {
	c.token = ""
}

// IsAuthenticated reports whether a session token is installed. The token
// may still be expired; calls will return ErrUnauthorized in that case.
func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

// do issues one JSON request and decodes the response into out when out is
// non-nil. Non-2xx responses are translated into client errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

func (c *Client) Register(ctx context.Context, firstName, lastName, email string) (*User, error) {
	req := map[string]string{"firstName": firstName, "lastName": lastName, "email": email}
	user := &User{}
	if err := c.do(ctx, http.MethodPost, "/api/register", req, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	req := map[string]string{"email": email, "code": code}
	return c.do(ctx, http.MethodPost, "/api/verify-email", req, nil)
}

func (c *Client) RequestLogin(ctx context.Context, email string) error {
	req := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/request-login", req, nil)
}

// ValidateLogin exchanges a one-time credential for a session token. The
// token is installed on the client on success.
func (c *Client) ValidateLogin(ctx context.Context, email, loginID, password string) (*User, error) {
	req := map[string]string{"email": email, "loginId": loginID, "password": password}
	var resp struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/validate-login", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp.User, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	user := &User{}
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) Elections(ctx context.Context) ([]Election, error) {
	var elections []Election
	if err := c.do(ctx, http.MethodGet, "/api/elections", nil, &elections); err != nil {
		return nil, err
	}
	return elections, nil
}

func (c *Client) Candidates(ctx context.Context, electionID string) ([]Candidate, error) {
	var candidates []Candidate
	if err := c.do(ctx, http.MethodGet, "/api/elections/"+electionID+"/candidates", nil, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (c *Client) SubmitVote(ctx context.Context, electionID, candidateID string) (*BallotReceipt, error) {
	req := map[string]string{"electionId": electionID, "candidateId": candidateID}
	receipt := &BallotReceipt{}
	if err := c.do(ctx, http.MethodPost, "/api/votes", req, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (c *Client) MyVotes(ctx context.Context) ([]BallotPayload, error) {
	var payloads []BallotPayload
	if err := c.do(ctx, http.MethodGet, "/api/my-votes", nil, &payloads); err != nil {
		return nil, err
	}
	return payloads, nil
}

func (c *Client) Results(ctx context.Context, electionID string) ([]CandidateResult, error) {
	var results []CandidateResult
	if err := c.do(ctx, http.MethodGet, "/api/elections/"+electionID+"/results", nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}
