package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/chronology"
	"github.com/applytrail/applytrail/internal/domain"
	"github.com/applytrail/applytrail/internal/models"
)

// ApplicationStore is the data-access interface ApplicationService depends on.
type ApplicationStore interface {
	ListApplications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.ApplicationSummary, bool, error)
	GetApplication(ctx context.Context, userID uuid.UUID, id int64) (*models.ApplicationDetail, error)
	CreateApplication(
		ctx context.Context, userID uuid.UUID, req models.CreateApplicationRequest, check models.StageCheck,
	) (*models.ApplicationDetail, error)
	DeleteApplication(ctx context.Context, userID uuid.UUID, id int64) error
}

// Compile-time check: *ApplicationService must satisfy domain.ApplicationService.
var _ domain.ApplicationService = (*ApplicationService)(nil)

// ApplicationService manages a user's applications.
type ApplicationService struct {
	store    ApplicationStore
	activity ActivityEnqueuer
	log      *logrus.Logger
}

// NewApplicationService creates an ApplicationService.
func NewApplicationService(store ApplicationStore, activity ActivityEnqueuer, log *logrus.Logger) *ApplicationService {
	return &ApplicationService{store: store, activity: activity, log: log}
}

// ListApplications returns a page of the user's applications (pass-through).
func (s *ApplicationService) ListApplications(
	ctx context.Context, userID uuid.UUID, limit, offset int,
) ([]models.ApplicationSummary, bool, error) {
	return s.store.ListApplications(ctx, userID, limit, offset)
}

// GetApplication returns an application with its stages (pass-through).
func (s *ApplicationService) GetApplication(ctx context.Context, userID uuid.UUID, id int64) (*models.ApplicationDetail, error) {
	return s.store.GetApplication(ctx, userID, id)
}

// CreateApplication creates an application and its APPLIED stage, then
// returns it with role and company filled in.
func (s *ApplicationService) CreateApplication(
	ctx context.Context, userID uuid.UUID, req models.CreateApplicationRequest,
) (*models.ApplicationDetail, error) {
	check := func(stages []models.Stage) error {
		return chronology.Validate(chronology.FromStages(stages))
	}

	created, err := s.store.CreateApplication(ctx, userID, req, check)
	if err != nil {
		return nil, err
	}

	recordActivity(s.activity, userID, "application.create", "application", strconv.FormatInt(created.ID, 10),
		map[string]any{"role_id": created.RoleID})

	detail, err := s.store.GetApplication(ctx, userID, created.ID)
	if err != nil {
		return nil, fmt.Errorf("reloading application %d: %w", created.ID, err)
	}

	return detail, nil
}

// DeleteApplication removes an application and its stages.
func (s *ApplicationService) DeleteApplication(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := s.store.DeleteApplication(ctx, userID, id); err != nil {
		return err
	}

	recordActivity(s.activity, userID, "application.delete", "application", strconv.FormatInt(id, 10), nil)

	return nil
}
