package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/applytrail/applytrail/internal/models"
)

// UserStore provides user account operations.
type UserStore struct {
	Base
}

// NewUserStore creates a new UserStore.
func NewUserStore(base Base) *UserStore {
	return &UserStore{Base: base}
}

// CreateUser inserts a new anonymous user.
func (s *UserStore) CreateUser(ctx context.Context, displayName string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u models.User

	err := s.Pool.QueryRow(ctx,
		`INSERT INTO users (id, display_name) VALUES ($1, $2)
		 RETURNING id, display_name, created_at`,
		uuid.New(), displayName,
	).Scan(&u.ID, &u.DisplayName, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return &u, nil
}

// GetUser returns a user by ID.
func (s *UserStore) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u models.User

	err := s.Pool.QueryRow(ctx,
		"SELECT id, display_name, created_at FROM users WHERE id = $1", userID,
	).Scan(&u.ID, &u.DisplayName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &u, nil
}
