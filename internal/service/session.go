// Package service sits between the HTTP handlers and the stores. It runs the
// chronology and world-graph logic over stored data, records activity for
// mutations and keeps handlers free of persistence details.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/domain"
	"github.com/applytrail/applytrail/internal/metrics"
	"github.com/applytrail/applytrail/internal/models"
)

// UserStore is the data-access interface SessionService depends on.
type UserStore interface {
	CreateUser(ctx context.Context, displayName string) (*models.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, time.Time, error)
}

// Compile-time check: *SessionService must satisfy domain.SessionService.
var _ domain.SessionService = (*SessionService)(nil)

// SessionService creates anonymous users and issues their session tokens.
type SessionService struct {
	users  UserStore
	tokens TokenIssuer
	log    *logrus.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(users UserStore, tokens TokenIssuer, log *logrus.Logger) *SessionService {
	return &SessionService{users: users, tokens: tokens, log: log}
}

// CreateAnonymousSession creates a new user and returns a token for it.
func (s *SessionService) CreateAnonymousSession(ctx context.Context, req models.CreateSessionRequest) (*models.Session, error) {
	user, err := s.users.CreateUser(ctx, req.DisplayName)
	if err != nil {
		return nil, err
	}

	token, expires, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing session: %w", err)
	}

	metrics.SessionsIssuedTotal.Inc()
	s.log.WithField("user_id", user.ID).Debug("anonymous session issued")

	return &models.Session{User: *user, Token: token, ExpiresAt: expires}, nil
}

// GetUser returns a user by ID (pass-through).
func (s *SessionService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}
