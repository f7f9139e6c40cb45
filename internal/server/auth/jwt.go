// Package auth implements the credential primitives of the server: stateless
// HS256 bearer tokens and bcrypt password hashing. Both are pure functions of
// their inputs so callers can test them with deterministic secrets.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Vvitsh/ticketstore/internal/common"
)

// Claims carried by a ticketstore bearer token. The token identifies no user
// on its own; it is bound to a user through the token column on the users
// table, which is what makes logout-time revocation possible.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken mints a signed token with issued-at now and expiry
// now+validityDuration.
func GenerateToken(secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken checks the signature and expiry of tokenString. An expired
// but otherwise well-formed token yields common.ErrTokenExpired so callers
// can tell the client to log in again; every other failure (bad signature,
// wrong algorithm, garbage input) yields common.ErrInvalidToken.
func ValidateToken(tokenString string, secretKey []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}

	if !token.Valid {
		return common.ErrInvalidToken
	}

	return nil
}
