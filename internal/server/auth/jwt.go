// Package auth implements session token issuance and the one-time login
// credential verifier. Tokens are HS256 JWTs whose only custom claim is the
// voter's email; downstream code treats that claim as the authenticated
// voter identity.
package auth

import (
	"time"

	"github.com/evote-app/evote-backend/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the authenticated voter email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// GenerateToken mints an HS256 session token for the given email.
func GenerateToken(email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetEmailFromToken validates a session token and returns the email claim.
func GetEmailFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Email == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Email, nil
}
