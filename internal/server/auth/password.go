package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Vvitsh/ticketstore/internal/common"
)

// HashPassword produces a salted bcrypt hash of password. The salt is
// generated per call, so hashing the same password twice never yields the
// same string. Hash failures are internal errors.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(h), nil
}

// CheckPassword verifies password against a stored bcrypt hash. A mismatch
// yields common.ErrInvalidCredentials; a hash that cannot be parsed yields
// common.ErrInternal. Callers must present both identically to clients so
// the distinction never becomes a user-enumeration oracle.
func CheckPassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return common.ErrInvalidCredentials
		}
		return common.ErrInternal
	}
	return nil
}
