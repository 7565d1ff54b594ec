package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/chronology"
	"github.com/applytrail/applytrail/internal/domain"
	"github.com/applytrail/applytrail/internal/metrics"
	"github.com/applytrail/applytrail/internal/models"
)

// StageStore is the data-access interface StageService depends on. Writes
// call check with the resulting stage set while the application is locked.
type StageStore interface {
	ListStages(ctx context.Context, userID uuid.UUID, appID int64) ([]models.Stage, error)
	CreateStage(ctx context.Context, userID uuid.UUID, appID int64, req models.StageRequest, check models.StageCheck) (*models.Stage, error)
	UpdateStage(
		ctx context.Context, userID uuid.UUID, appID, stageID int64, req models.StageRequest, check models.StageCheck,
	) (*models.Stage, error)
	DeleteStage(ctx context.Context, userID uuid.UUID, appID, stageID int64, check models.StageCheck) error
}

// Compile-time check: *StageService must satisfy domain.StageService.
var _ domain.StageService = (*StageService)(nil)

// StageService guards every stage write with the chronology rules.
type StageService struct {
	store    StageStore
	activity ActivityEnqueuer
	log      *logrus.Logger
}

// NewStageService creates a StageService.
func NewStageService(store StageStore, activity ActivityEnqueuer, log *logrus.Logger) *StageService {
	return &StageService{store: store, activity: activity, log: log}
}

// checkChronology validates a candidate stage set and counts rejections.
func (s *StageService) checkChronology(stages []models.Stage) error {
	err := chronology.Validate(chronology.FromStages(stages))

	var v *chronology.Violation
	if errors.As(err, &v) {
		metrics.StageViolationsTotal.WithLabelValues(string(v.Code)).Inc()
		s.log.WithField("code", v.Code).Debug("stage write rejected")
	}

	return err
}

// ListStages returns an application's stages (pass-through).
func (s *StageService) ListStages(ctx context.Context, userID uuid.UUID, appID int64) ([]models.Stage, error) {
	return s.store.ListStages(ctx, userID, appID)
}

// CreateStage adds a stage if the resulting chronology is valid.
func (s *StageService) CreateStage(
	ctx context.Context, userID uuid.UUID, appID int64, req models.StageRequest,
) (*models.Stage, error) {
	st, err := s.store.CreateStage(ctx, userID, appID, req, s.checkChronology)
	if err != nil {
		return nil, err
	}

	recordActivity(s.activity, userID, "stage.create", "stage", strconv.FormatInt(st.ID, 10),
		map[string]any{"application_id": appID, "type": st.Type})

	return st, nil
}

// UpdateStage replaces a stage if the resulting chronology is valid.
func (s *StageService) UpdateStage(
	ctx context.Context, userID uuid.UUID, appID, stageID int64, req models.StageRequest,
) (*models.Stage, error) {
	st, err := s.store.UpdateStage(ctx, userID, appID, stageID, req, s.checkChronology)
	if err != nil {
		return nil, err
	}

	recordActivity(s.activity, userID, "stage.update", "stage", strconv.FormatInt(stageID, 10),
		map[string]any{"application_id": appID, "type": st.Type})

	return st, nil
}

// DeleteStage removes a stage if the remaining chronology is valid.
func (s *StageService) DeleteStage(ctx context.Context, userID uuid.UUID, appID, stageID int64) error {
	if err := s.store.DeleteStage(ctx, userID, appID, stageID, s.checkChronology); err != nil {
		return err
	}

	recordActivity(s.activity, userID, "stage.delete", "stage", strconv.FormatInt(stageID, 10),
		map[string]any{"application_id": appID})

	return nil
}
