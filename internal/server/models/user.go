package models

import "time"

// User roles. Admins manage elections and candidates but are barred from
// casting ballots.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account identified by email. Login is passwordless:
// a short-lived one-time credential is issued on demand and only its derived
// verifier is stored.
type User struct {
	ID                    string
	FirstName             string
	LastName              string
	Email                 string
	Role                  string
	EmailVerified         bool
	EmailVerificationCode string

	// One-time login credential. LoginVerifier is an argon2id digest of the
	// one-time password; the plaintext is never persisted. All three fields
	// are cleared after a successful login.
	LoginID       string
	LoginSalt     []byte
	LoginVerifier []byte

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user holds the administrative role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
