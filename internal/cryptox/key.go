package cryptox

import (
	"crypto/sha256"

	"github.com/evote-app/evote-backend/internal/common"
)

// CompositeKeySize is the length of the derived ballot key: 32 bytes, AES-256.
const CompositeKeySize = sha256.Size

// DeriveCompositeKey combines the two independently held key shares into the
// single symmetric key used to encrypt ballots at rest. The shares are
// concatenated before hashing, so the derivation is order-sensitive: swapping
// the shares yields a different key.
//
// Both the submission path and the tally path must derive the key the same
// way; the function is pure and cheap, so callers recompute it rather than
// holding the key material anywhere long-lived.
//
// Returns common.ErrMissingKeyShare if either share is empty. This is a
// configuration problem and should be checked once at process start, not
// discovered at encryption time.
func DeriveCompositeKey(shareA, shareB string) ([]byte, error) {
	if shareA == "" || shareB == "" {
		return nil, common.ErrMissingKeyShare
	}
	sum := sha256.Sum256([]byte(shareA + shareB))
	return sum[:], nil
}
