package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/evote-app/evote-backend/internal/logging"
	"github.com/evote-app/evote-backend/internal/server/config"
	"github.com/evote-app/evote-backend/internal/server/models"
	"github.com/evote-app/evote-backend/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// The repositories use portable SQL, so service tests run against an
// in-memory SQLite database with an equivalent schema instead of Postgres.
const testSchema = `
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

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
		KeyShare1:             "alpha-share",
		KeyShare2:             "beta-share",
	}
}

func seedUser(t *testing.T, db *sql.DB, m repomanager.RepositoryManager, email, role string) *models.User {
	t.Helper()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	user := &models.User{
		ID:            uuid.NewString(),
		FirstName:     "Test",
		LastName:      "Voter",
		Email:         email,
		Role:          role,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, m.Users(db).Create(context.Background(), user))
	return user
}

func seedElection(t *testing.T, db *sql.DB, m repomanager.RepositoryManager, start, end time.Time) *models.Election {
	t.Helper()
	election := &models.Election{
		ID:          uuid.NewString(),
		Title:       "General Election",
		Description: "test election",
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   start.Add(-24 * time.Hour),
		UpdatedAt:   start.Add(-24 * time.Hour),
	}
	require.NoError(t, m.Elections(db).Create(context.Background(), election))
	return election
}

func countVotes(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM votes`).Scan(&n))
	return n
}

// fakeMailer records dispatched messages instead of delivering them.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *fakeMailer) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "expected at least one dispatched mail")
	return m.sent[len(m.sent)-1]
}
