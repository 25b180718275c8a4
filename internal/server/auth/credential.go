package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

// One-time credential sizes, matching the legacy account flow: codes are
// prefixes of a random UUID string.
const (
	VerificationCodeLength = 6
	LoginIDLength          = 18
	LoginPasswordLength    = 8
)

// NewShortCode returns a random code of n characters taken from a freshly
// generated UUID string.
func NewShortCode(n int) string {
	s := uuid.NewString()
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// NewSalt returns a fresh random 16-byte salt for the credential verifier.
func NewSalt() ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveLoginVerifier derives the stored verifier for a one-time login
// password. Only the verifier is persisted; the plaintext password exists
// only in the email sent to the voter.
func DeriveLoginVerifier(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
}

// CheckLoginCredential verifies a submitted loginID/password pair against the
// stored loginID and verifier in constant time.
func CheckLoginCredential(storedLoginID string, storedVerifier, salt []byte, loginID, password string) bool {
	if storedLoginID == "" || len(storedVerifier) == 0 {
		return false
	}
	idOK := subtle.ConstantTimeCompare([]byte(storedLoginID), []byte(loginID)) == 1
	candidate := DeriveLoginVerifier(password, salt)
	pwOK := subtle.ConstantTimeCompare(storedVerifier, candidate) == 1
	return idOK && pwOK
}

// EqualCode compares two short verification codes without leaking length
// information about the stored code.
func EqualCode(stored, candidate string) bool {
	stored = strings.TrimSpace(stored)
	candidate = strings.TrimSpace(candidate)
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
