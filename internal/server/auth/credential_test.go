package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShortCode_Lengths(t *testing.T) {
	assert.Len(t, NewShortCode(VerificationCodeLength), VerificationCodeLength)
	assert.Len(t, NewShortCode(LoginIDLength), LoginIDLength)
	assert.Len(t, NewShortCode(LoginPasswordLength), LoginPasswordLength)
}

func TestCheckLoginCredential(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	verifier := DeriveLoginVerifier("pw-12345", salt)

	assert.True(t, CheckLoginCredential("login-id", verifier, salt, "login-id", "pw-12345"))
	assert.False(t, CheckLoginCredential("login-id", verifier, salt, "login-id", "pw-wrong"))
	assert.False(t, CheckLoginCredential("login-id", verifier, salt, "other-id", "pw-12345"))
	assert.False(t, CheckLoginCredential("", nil, salt, "login-id", "pw-12345"),
		"cleared credential must never validate")
}

func TestEqualCode(t *testing.T) {
	assert.True(t, EqualCode("abc123", "abc123"))
	assert.True(t, EqualCode(" abc123 ", "abc123"))
	assert.False(t, EqualCode("abc123", "abc124"))
	assert.False(t, EqualCode("", ""), "empty stored code must not match")
}
