package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/models"
	"github.com/applytrail/applytrail/internal/world"
)

var testUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

// activityCall captures a RecordActivity invocation.
type activityCall struct {
	UserID     uuid.UUID
	Action     string
	EntityType string
	EntityID   string
	Detail     map[string]any
}

// mockRecorder records activity writes.
type mockRecorder struct {
	mu    sync.Mutex
	calls []activityCall
}

func (m *mockRecorder) RecordActivity(
	_ context.Context, userID uuid.UUID, action, entityType, entityID string, detail map[string]any,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, activityCall{userID, action, entityType, entityID, detail})
	return nil
}

func (m *mockRecorder) getCalls() []activityCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]activityCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// mockQueue collects enqueued activity jobs synchronously.
type mockQueue struct {
	mu   sync.Mutex
	jobs []*ActivityJob
}

func (m *mockQueue) Enqueue(job *ActivityJob) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
}

func (m *mockQueue) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.jobs))
	for i, j := range m.jobs {
		out[i] = j.Action
	}
	return out
}

// mockStageStore holds an in-memory stage set for one application and runs
// the supplied check the way the real store does.
type mockStageStore struct {
	mu     sync.Mutex
	stages []models.Stage
	nextID int64
	err    error
}

func (m *mockStageStore) ListStages(_ context.Context, _ uuid.UUID, _ int64) ([]models.Stage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Stage(nil), m.stages...), m.err
}

func (m *mockStageStore) CreateStage(
	_ context.Context, _ uuid.UUID, appID int64, req models.StageRequest, check models.StageCheck,
) (*models.Stage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	m.nextID++
	st := models.Stage{ID: m.nextID, ApplicationID: appID, Type: req.Type, Date: req.Date}
	candidate := append(append([]models.Stage(nil), m.stages...), st)
	if err := check(candidate); err != nil {
		return nil, err
	}

	m.stages = candidate
	return &st, nil
}

func (m *mockStageStore) UpdateStage(
	_ context.Context, _ uuid.UUID, _, stageID int64, req models.StageRequest, check models.StageCheck,
) (*models.Stage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidate := append([]models.Stage(nil), m.stages...)
	for i := range candidate {
		if candidate[i].ID != stageID {
			continue
		}

		candidate[i].Type = req.Type
		candidate[i].Date = req.Date
		if err := check(candidate); err != nil {
			return nil, err
		}

		m.stages = candidate
		return &candidate[i], nil
	}

	return nil, models.ErrStageNotFound
}

func (m *mockStageStore) DeleteStage(_ context.Context, _ uuid.UUID, _, stageID int64, check models.StageCheck) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.stages {
		if m.stages[i].ID != stageID {
			continue
		}

		candidate := append(append([]models.Stage(nil), m.stages[:i]...), m.stages[i+1:]...)
		if err := check(candidate); err != nil {
			return err
		}

		m.stages = candidate
		return nil
	}

	return models.ErrStageNotFound
}

// mockApplicationStore returns configured responses.
type mockApplicationStore struct {
	createFn func(ctx context.Context, userID uuid.UUID, req models.CreateApplicationRequest, check models.StageCheck) (*models.ApplicationDetail, error)
	getFn    func(ctx context.Context, userID uuid.UUID, id int64) (*models.ApplicationDetail, error)
	deleteFn func(ctx context.Context, userID uuid.UUID, id int64) error
}

func (m *mockApplicationStore) ListApplications(context.Context, uuid.UUID, int, int) ([]models.ApplicationSummary, bool, error) {
	return nil, false, nil
}

func (m *mockApplicationStore) GetApplication(ctx context.Context, userID uuid.UUID, id int64) (*models.ApplicationDetail, error) {
	return m.getFn(ctx, userID, id)
}

func (m *mockApplicationStore) CreateApplication(
	ctx context.Context, userID uuid.UUID, req models.CreateApplicationRequest, check models.StageCheck,
) (*models.ApplicationDetail, error) {
	return m.createFn(ctx, userID, req, check)
}

func (m *mockApplicationStore) DeleteApplication(ctx context.Context, userID uuid.UUID, id int64) error {
	return m.deleteFn(ctx, userID, id)
}

// mockWorldSources implements RoleReader, ApplicationCounter and WorldRowSource.
type mockWorldSources struct {
	role     *models.RoleWithCompany
	roleErr  error
	count    int
	countErr error
	rows     []world.Row
	rowsErr  error
}

func (m *mockWorldSources) GetRole(context.Context, int64) (*models.RoleWithCompany, error) {
	return m.role, m.roleErr
}

func (m *mockWorldSources) CountApplicationsForRole(context.Context, int64) (int, error) {
	return m.count, m.countErr
}

func (m *mockWorldSources) ListWorldRows(context.Context, int64) ([]world.Row, error) {
	return m.rows, m.rowsErr
}

// mockUserStore creates users in memory.
type mockUserStore struct {
	err error
}

func (m *mockUserStore) CreateUser(_ context.Context, displayName string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.User{ID: testUserID, DisplayName: displayName, CreatedAt: time.Now()}, nil
}

func (m *mockUserStore) GetUser(_ context.Context, userID uuid.UUID) (*models.User, error) {
	if userID != testUserID {
		return nil, models.ErrUserNotFound
	}
	return &models.User{ID: testUserID}, nil
}
