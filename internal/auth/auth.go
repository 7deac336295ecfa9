// Package auth provides the authentication collaborator: bcrypt-backed
// registration and login. The core only ever consumes the user ID a
// successful login resolves.
package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/securityinshadows/sish/internal/common"
	"github.com/securityinshadows/sish/internal/service"
)

// Service authenticates users against the persisted accounts.
type Service struct {
	store service.UserStore
}

// NewService creates an authentication service over the given store.
func NewService(store service.UserStore) *Service {
	return &Service{store: store}
}

// Register hashes the password and creates the account. A taken username
// fails with common.ErrDuplicateUser.
func (s *Service) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return common.NewUserError("username cannot be empty", nil)
	}
	if password == "" {
		return common.NewUserError("password cannot be empty", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.store.CreateUser(ctx, username, string(hash)); err != nil {
		return err
	}
	return nil
}

// Authenticate verifies the password and returns the user's ID. Unknown
// usernames and wrong passwords both fail with common.ErrAuthFailed; the
// caller cannot tell which it was.
func (s *Service) Authenticate(ctx context.Context, username, password string) (int64, error) {
	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, common.ErrAuthFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, common.ErrAuthFailed
	}
	return user.ID, nil
}
