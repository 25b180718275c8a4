package cryptox

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/evote-app/evote-backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Voter     string `json:"user"`
	Election  string `json:"election"`
	Candidate string `json:"candidate"`
}

func TestDeriveCompositeKey_Deterministic(t *testing.T) {
	key1, err := DeriveCompositeKey("alpha-share", "beta-share")
	require.NoError(t, err)
	key2, err := DeriveCompositeKey("alpha-share", "beta-share")
	require.NoError(t, err)

	assert.Equal(t, key1, key2)
	assert.Len(t, key1, CompositeKeySize)

	// snapshot: sha256("alpha-share" + "beta-share")
	expectedHex := "72949c2e2e76fd9697c547dc73a0ff845103eb6c2fa0352d02bfd1e175442034"
	assert.Equal(t, expectedHex, hex.EncodeToString(key1))
}

func TestDeriveCompositeKey_OrderSensitive(t *testing.T) {
	keyAB, err := DeriveCompositeKey("alpha-share", "beta-share")
	require.NoError(t, err)
	keyBA, err := DeriveCompositeKey("beta-share", "alpha-share")
	require.NoError(t, err)

	assert.NotEqual(t, keyAB, keyBA, "swapped shares must not derive the same key")
}

func TestDeriveCompositeKey_MissingShare(t *testing.T) {
	for _, tc := range []struct{ a, b string }{
		{"", "beta"},
		{"alpha", ""},
		{"", ""},
	} {
		_, err := DeriveCompositeKey(tc.a, tc.b)
		require.ErrorIs(t, err, common.ErrMissingKeyShare)
	}
}

func TestEncryptDecryptBallot_RoundTrip(t *testing.T) {
	key, err := DeriveCompositeKey("alpha-share", "beta-share")
	require.NoError(t, err)

	in := testPayload{Voter: "voter@example.com", Election: "e1", Candidate: "c1"}
	cipherHex, ivHex, err := EncryptBallot(in, key)
	require.NoError(t, err)

	var out testPayload
	require.NoError(t, DecryptBallot(cipherHex, ivHex, key, &out))
	assert.Equal(t, in, out)
}

func TestEncryptBallot_FreshIVPerCall(t *testing.T) {
	key, err := DeriveCompositeKey("alpha-share", "beta-share")
	require.NoError(t, err)

	in := testPayload{Voter: "voter@example.com", Election: "e1", Candidate: "c1"}
	cipher1, iv1, err := EncryptBallot(in, key)
	require.NoError(t, err)
	cipher2, iv2, err := EncryptBallot(in, key)
	require.NoError(t, err)

	assert.NotEqual(t, iv1, iv2, "iv must be fresh on every encryption")
	assert.NotEqual(t, cipher1, cipher2, "same plaintext must not produce the same ciphertext")
}

func TestDecryptBallot_Undecryptable(t *testing.T) {
	key, err := DeriveCompositeKey("alpha-share", "beta-share")
	require.NoError(t, err)

	cipherHex, ivHex, err := EncryptBallot(testPayload{Voter: "v", Election: "e", Candidate: "c"}, key)
	require.NoError(t, err)

	otherKey, err := DeriveCompositeKey("beta-share", "alpha-share")
	require.NoError(t, err)

	tests := []struct {
		name      string
		cipherHex string
		ivHex     string
		key       []byte
	}{
		{"malformed ciphertext hex", "zz-not-hex", ivHex, key},
		{"malformed iv hex", cipherHex, "zz-not-hex", key},
		{"iv wrong length", cipherHex, "abcd", key},
		{"truncated ciphertext", cipherHex[:10], ivHex, key},
		{"empty ciphertext", "", ivHex, key},
		{"wrong key garbles padding", cipherHex, ivHex, otherKey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out testPayload
			err := DecryptBallot(tc.cipherHex, tc.ivHex, tc.key, &out)
			require.Error(t, err)
			if !errors.Is(err, common.ErrBallotUndecryptable) {
				// A wrong key can, with tiny probability, survive the padding
				// check; even then the JSON check must classify it the same way.
				t.Fatalf("want ErrBallotUndecryptable, got %v", err)
			}
		})
	}
}

func TestEncryptBallot_BadKeyLength(t *testing.T) {
	_, _, err := EncryptBallot(testPayload{}, []byte("short"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrBallotUndecryptable)
}
