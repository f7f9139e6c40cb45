// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, logout, and resolving a
// bearer token to its user.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Vvitsh/ticketstore/internal/common"
	"github.com/Vvitsh/ticketstore/internal/server/auth"
	"github.com/Vvitsh/ticketstore/internal/server/config"
	"github.com/Vvitsh/ticketstore/internal/server/models"
	"github.com/Vvitsh/ticketstore/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
//   - Register: create a user and issue their first token
//   - Login: verify credentials and rotate the stored token
//   - Logout: clear the stored token, revoking the session
//   - Authenticate: resolve a bearer token to a user for the request guard
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with the given credentials. The password hash
// and a freshly minted token are persisted together; the plaintext password
// never leaves this call. A taken username yields common.ErrConflict.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	token, err := auth.GenerateToken(s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		Token:        &token,
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the password for username and, on success, issues a new
// token and overwrites the stored one. Any previously issued token stops
// passing the guard at that moment: a user has at most one live session.
// An unknown username yields common.ErrNotFound, a wrong password
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	if err := auth.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	if err := repo.UpdateToken(ctx, user.ID, &token); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	user.Token = &token
	return user, nil
}

// Logout clears the stored token of the given already-authenticated user.
// The cleared token can never pass the guard again, even while it remains
// cryptographically unexpired.
func (s *UserService) Logout(ctx context.Context, user *models.User) error {
	repo := s.repomanager.Users(s.db)
	if err := repo.UpdateToken(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	user.Token = nil
	return nil
}

// Authenticate resolves a bearer token to its user. The stored-token lookup
// runs first and the cryptographic check second, so an invalid-but-well-
// formed token costs a DB round trip just like a valid one; this flattens
// the timing profile between the two failure modes, best effort only.
// No matching user yields common.ErrUnauthenticated; an expired or invalid
// token yields the corresponding token error.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	if err := auth.ValidateToken(token, s.jwtSecret); err != nil {
		return nil, err
	}

	return user, nil
}
