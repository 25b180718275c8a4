package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/evote-app/evote-backend/internal/cryptox"
	"github.com/evote-app/evote-backend/internal/logging"
	"github.com/evote-app/evote-backend/internal/server/auth"
	"github.com/evote-app/evote-backend/internal/server/config"
	"github.com/evote-app/evote-backend/internal/server/models"
	"github.com/evote-app/evote-backend/internal/server/repositories/repomanager"
	"github.com/evote-app/evote-backend/internal/server/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const apiTestSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    role TEXT NOT NULL DEFAULT 'user',
    email_verified BOOLEAN NOT NULL DEFAULT FALSE,
    email_verification_code TEXT NOT NULL DEFAULT '',
    login_id TEXT,
    login_salt BLOB,
    login_verifier BLOB,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE TABLE elections (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE TABLE candidates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    party TEXT NOT NULL DEFAULT '',
    election_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE TABLE votes (
    id TEXT PRIMARY KEY,
    voter_email TEXT NOT NULL,
    encrypted_vote TEXT NOT NULL,
    iv TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);
`

// recordingMailer captures outgoing mail so tests can read the codes.
type recordingMailer struct {
	mu   sync.Mutex
	sent []struct{ to, subject, body string }
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, struct{ to, subject, body string }{to, subject, body})
	return nil
}

func (m *recordingMailer) lastBody(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1].body
}

type apiFixture struct {
	handler http.Handler
	db      *sql.DB
	repos   repomanager.RepositoryManager
	cfg     *config.Config
	mailer  *recordingMailer
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(apiTestSchema)
	require.NoError(t, err)

	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
		KeyShare1:             "alpha-share",
		KeyShare2:             "beta-share",
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	repos := repomanager.NewPostgresRepositoryManager()
	mailer := &recordingMailer{}

	us := services.NewUserService(db, repos, mailer, cfg, logger)
	vs := services.NewVoteService(db, repos, cfg, logger)
	es := services.NewElectionService(db, repos, vs, logger)
	cs := services.NewCandidateService(db, repos, logger)

	srv := NewServer(":0", logger, us, es, cs, vs, cfg.SecretKey)
	return &apiFixture{handler: srv.Handler(), db: db, repos: repos, cfg: cfg, mailer: mailer}
}

func (f *apiFixture) seedUser(t *testing.T, email, role string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, f.repos.Users(f.db).Create(context.Background(), &models.User{
		ID:            uuid.NewString(),
		FirstName:     "Test",
		LastName:      "User",
		Email:         email,
		Role:          role,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
}

func (f *apiFixture) seedElection(t *testing.T, start, end time.Time) *models.Election {
	t.Helper()
	election := &models.Election{
		ID:        uuid.NewString(),
		Title:     "General Election",
		StartDate: start,
		EndDate:   end,
		CreatedAt: start.Add(-time.Hour),
		UpdatedAt: start.Add(-time.Hour),
	}
	require.NoError(t, f.repos.Elections(f.db).Create(context.Background(), election))
	return election
}

// seedBallot writes an encrypted ballot directly, bypassing window checks.
func (f *apiFixture) seedBallot(t *testing.T, voterEmail, electionID, candidate string) {
	t.Helper()
	key, err := cryptox.DeriveCompositeKey(f.cfg.KeyShare1, f.cfg.KeyShare2)
	require.NoError(t, err)
	encrypted, iv, err := cryptox.EncryptBallot(models.BallotPayload{
		Voter: voterEmail, Election: electionID, Candidate: candidate,
	}, key)
	require.NoError(t, err)
	require.NoError(t, f.repos.Votes(f.db).Create(context.Background(), &models.Ballot{
		ID:            uuid.NewString(),
		VoterEmail:    voterEmail,
		EncryptedVote: encrypted,
		IV:            iv,
		CreatedAt:     time.Now().UTC(),
	}))
}

func (f *apiFixture) token(t *testing.T, email string) string {
	t.Helper()
	token, err := auth.GenerateToken(email, []byte(f.cfg.SecretKey), time.Hour)
	require.NoError(t, err)
	return token
}

// do performs a request against the handler and decodes the JSON response
// into out when out is non-nil.
func (f *apiFixture) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	if out != nil {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out),
			"body: %s", rec.Body.String())
	}
	return rec.Code
}

func TestAuthRequired(t *testing.T) {
	f := newAPIFixture(t)

	code := f.do(t, http.MethodGet, "/api/elections", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code = f.do(t, http.MethodGet, "/api/elections", "not-a-jwt", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAccountLifecycle(t *testing.T) {
	f := newAPIFixture(t)

	var user struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"emailVerified"`
	}
	code := f.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com",
	}, &user)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.False(t, user.EmailVerified)

	// duplicate registration
	code = f.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com",
	}, nil)
	assert.Equal(t, http.StatusConflict, code)

	verifyCode := regexp.MustCompile(`Verification Code: (\S+)`).
		FindStringSubmatch(f.mailer.lastBody(t))[1]
	code = f.do(t, http.MethodPost, "/api/verify-email", "", map[string]string{
		"email": "jane@example.com", "code": verifyCode,
	}, nil)
	require.Equal(t, http.StatusOK, code)

	code = f.do(t, http.MethodPost, "/api/request-login", "", map[string]string{
		"email": "jane@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, code)

	creds := regexp.MustCompile(`Your login ID is:\n\n(\S+)\n\nand your password is:\n\n(\S+)`).
		FindStringSubmatch(f.mailer.lastBody(t))
	require.Len(t, creds, 3)

	var login struct {
		Token string `json:"token"`
	}
	code = f.do(t, http.MethodPost, "/api/validate-login", "", map[string]string{
		"email": "jane@example.com", "loginId": creds[1], "password": creds[2],
	}, &login)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, login.Token)

	var me struct {
		Email string `json:"email"`
	}
	code = f.do(t, http.MethodGet, "/api/me", login.Token, nil, &me)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "jane@example.com", me.Email)
}

func TestVoteFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser(t, "admin@example.com", models.RoleAdmin)
	f.seedUser(t, "voter@example.com", models.RoleUser)
	adminToken := f.token(t, "admin@example.com")
	voterToken := f.token(t, "voter@example.com")

	now := time.Now().UTC()
	var election struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	code := f.do(t, http.MethodPost, "/api/elections", adminToken, map[string]any{
		"title":     "General Election",
		"startDate": now.Add(-time.Hour),
		"endDate":   now.Add(time.Hour),
	}, &election)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "ongoing", election.Status)

	var candidate struct {
		ID string `json:"id"`
	}
	code = f.do(t, http.MethodPost, "/api/elections/"+election.ID+"/candidates", adminToken,
		map[string]string{"name": "Alice", "party": "Greens"}, &candidate)
	require.Equal(t, http.StatusCreated, code)

	// non-admin cannot create elections
	code = f.do(t, http.MethodPost, "/api/elections", voterToken, map[string]any{
		"title": "Rogue", "startDate": now, "endDate": now.Add(time.Hour),
	}, nil)
	assert.Equal(t, http.StatusForbidden, code)

	var receipt struct {
		ID            string `json:"id"`
		EncryptedVote string `json:"encryptedVote"`
	}
	code = f.do(t, http.MethodPost, "/api/votes", voterToken, map[string]string{
		"electionId": election.ID, "candidateId": candidate.ID,
	}, &receipt)
	require.Equal(t, http.StatusCreated, code)
	assert.NotEmpty(t, receipt.ID)
	assert.Empty(t, receipt.EncryptedVote, "receipt must not expose ciphertext")

	// one ballot per voter per election
	code = f.do(t, http.MethodPost, "/api/votes", voterToken, map[string]string{
		"electionId": election.ID, "candidateId": candidate.ID,
	}, nil)
	assert.Equal(t, http.StatusConflict, code)

	// admins are barred from voting
	code = f.do(t, http.MethodPost, "/api/votes", adminToken, map[string]string{
		"electionId": election.ID, "candidateId": candidate.ID,
	}, nil)
	assert.Equal(t, http.StatusForbidden, code)

	var myVotes []models.BallotPayload
	code = f.do(t, http.MethodGet, "/api/my-votes", voterToken, nil, &myVotes)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, myVotes, 1)
	assert.Equal(t, candidate.ID, myVotes[0].Candidate)
	assert.Equal(t, "voter@example.com", myVotes[0].Voter)
}

func TestElectionResults(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser(t, "voter@example.com", models.RoleUser)
	token := f.token(t, "voter@example.com")

	now := time.Now().UTC()

	ongoing := f.seedElection(t, now.Add(-time.Hour), now.Add(time.Hour))
	code := f.do(t, http.MethodGet, "/api/elections/"+ongoing.ID+"/results", token, nil, nil)
	assert.Equal(t, http.StatusForbidden, code, "no results while voting is open")

	ended := f.seedElection(t, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	f.seedBallot(t, "a@example.com", ended.ID, "candidate-1")
	f.seedBallot(t, "b@example.com", ended.ID, "candidate-1")
	f.seedBallot(t, "c@example.com", ended.ID, "candidate-2")
	f.seedBallot(t, "d@example.com", ongoing.ID, "candidate-1")

	var results []models.CandidateResult
	code = f.do(t, http.MethodGet, "/api/elections/"+ended.ID+"/results", token, nil, &results)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []models.CandidateResult{
		{Candidate: "candidate-1", Count: 2},
		{Candidate: "candidate-2", Count: 1},
	}, results)

	code = f.do(t, http.MethodGet, "/api/elections/no-such-id/results", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMalformedBody(t *testing.T) {
	f := newAPIFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
