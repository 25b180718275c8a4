// Package cryptox implements the ballot confidentiality primitives: the
// two-share composite key derivation and the AES-256-CBC ballot cipher.
//
// The at-rest format is fixed: ciphertext and IV are stored as lowercase hex
// strings, the plaintext is the JSON serialization of the ballot payload,
// padded with PKCS#7. Changing any of this breaks decryption of already
// persisted ballots.
//
// Note that CBC provides no authentication. Every ballot in the system is
// encrypted under the same composite key, so decrypting another voter's
// ballot is only prevented by application-level filtering on the voter
// column, not by the cipher.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/evote-app/evote-backend/internal/common"
)

// EncryptBallot serializes v to JSON and encrypts it with AES-256-CBC under
// key, generating a fresh random 16-byte IV for this single ballot. IVs are
// never reused. The ciphertext and IV are returned hex-encoded, ready to
// persist.
func EncryptBallot(v any, key []byte) (cipherHex, ivHex string, err error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", "", fmt.Errorf("serializing ballot: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", "", fmt.Errorf("initializing cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", "", fmt.Errorf("generating iv: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(ciphertext), hex.EncodeToString(iv), nil
}

// DecryptBallot reverses EncryptBallot and unmarshals the plaintext into v.
//
// Any failure that makes the ballot unreadable (malformed hex, wrong IV
// length, bad padding, plaintext that is not the expected JSON) is reported
// as common.ErrBallotUndecryptable so callers can recognize it and skip the
// ballot. A wrong key length is a caller bug and is returned as-is.
func DecryptBallot(cipherHex, ivHex string, key []byte, v any) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("initializing cipher: %w", err)
	}

	ciphertext, err := hex.DecodeString(cipherHex)
	if err != nil {
		return fmt.Errorf("%w: malformed ciphertext hex", common.ErrBallotUndecryptable)
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return fmt.Errorf("%w: malformed iv hex", common.ErrBallotUndecryptable)
	}
	if len(iv) != aes.BlockSize {
		return fmt.Errorf("%w: iv must be %d bytes", common.ErrBallotUndecryptable, aes.BlockSize)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return fmt.Errorf("%w: ciphertext is not a whole number of blocks", common.ErrBallotUndecryptable)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBallotUndecryptable, err)
	}

	if err := json.Unmarshal(unpadded, v); err != nil {
		return fmt.Errorf("%w: plaintext is not a valid ballot", common.ErrBallotUndecryptable)
	}
	return nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(b))
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", n)
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return b[:len(b)-n], nil
}
