package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/domain"
	"github.com/applytrail/applytrail/internal/models"
)

// ActivityStore is the data-access interface ActivityService depends on.
type ActivityStore interface {
	domain.ActivityRecorder
	ListActivity(ctx context.Context, userID uuid.UUID, q models.ActivityQuery) ([]models.ActivityEntry, bool, error)
	PurgeActivity(ctx context.Context, retentionDays int) (int, error)
}

// Compile-time check: *ActivityService must satisfy domain.ActivityService.
var _ domain.ActivityService = (*ActivityService)(nil)

// ActivityService serves the activity feed and its retention.
type ActivityService struct {
	store ActivityStore
	log   *logrus.Logger
}

// NewActivityService creates an ActivityService.
func NewActivityService(store ActivityStore, log *logrus.Logger) *ActivityService {
	return &ActivityService{store: store, log: log}
}

// ListActivity returns the user's activity entries (pass-through).
func (s *ActivityService) ListActivity(
	ctx context.Context, userID uuid.UUID, q models.ActivityQuery,
) ([]models.ActivityEntry, bool, error) {
	return s.store.ListActivity(ctx, userID, q)
}

// PurgeActivity deletes entries older than retentionDays and logs the result.
func (s *ActivityService) PurgeActivity(ctx context.Context, retentionDays int) (int, error) {
	deleted, err := s.store.PurgeActivity(ctx, retentionDays)
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"retention_days": retentionDays,
		"deleted":        deleted,
	}).Info("activity.purge")

	return deleted, nil
}
