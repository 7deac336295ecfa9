package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/securityinshadows/sish/internal/common"
	"github.com/securityinshadows/sish/internal/model"
)

// CreateUser inserts a new user with the given password hash. A taken
// username fails with common.ErrDuplicateUser.
func (s *SQLiteStorage) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}
	if err := validateString(passwordHash, "passwordHash"); err != nil {
		return nil, err
	}

	existing, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", common.ErrDuplicateUser, username)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, 'user')`,
		username, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create user: %v", common.ErrPersistence, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user ID: %v", common.ErrPersistence, err)
	}

	slog.Info("registered user", "username", username, "id", id)
	return &model.User{ID: id, Username: username, PasswordHash: passwordHash, Role: "user"}, nil
}

// GetUserByUsername returns the named user, or nil if absent.
func (s *SQLiteStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	var user model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role FROM users WHERE username = ?`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query user: %v", common.ErrPersistence, err)
	}

	return &user, nil
}
