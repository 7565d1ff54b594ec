package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/domain"
	"github.com/applytrail/applytrail/internal/models"
)

// TaskStore is the data-access interface TaskService depends on.
type TaskStore interface {
	ListTasks(ctx context.Context, userID uuid.UUID, f models.TaskFilter) ([]models.Task, bool, error)
	CreateTask(ctx context.Context, userID uuid.UUID, req models.TaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, userID uuid.UUID, id int64, req models.TaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, userID uuid.UUID, id int64) error
}

// Compile-time check: *TaskService must satisfy domain.TaskService.
var _ domain.TaskService = (*TaskService)(nil)

// TaskService wraps TaskStore with activity recording for mutations.
type TaskService struct {
	store    TaskStore
	activity ActivityEnqueuer
	log      *logrus.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(store TaskStore, activity ActivityEnqueuer, log *logrus.Logger) *TaskService {
	return &TaskService{store: store, activity: activity, log: log}
}

// ListTasks returns a page of the user's tasks (pass-through).
func (s *TaskService) ListTasks(ctx context.Context, userID uuid.UUID, f models.TaskFilter) ([]models.Task, bool, error) {
	return s.store.ListTasks(ctx, userID, f)
}

// CreateTask creates a task.
func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, req models.TaskRequest) (*models.Task, error) {
	t, err := s.store.CreateTask(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	recordActivity(s.activity, userID, "task.create", "task", strconv.FormatInt(t.ID, 10),
		map[string]any{"title": t.Title})

	return t, nil
}

// UpdateTask replaces a task.
func (s *TaskService) UpdateTask(ctx context.Context, userID uuid.UUID, id int64, req models.TaskRequest) (*models.Task, error) {
	t, err := s.store.UpdateTask(ctx, userID, id, req)
	if err != nil {
		return nil, err
	}

	recordActivity(s.activity, userID, "task.update", "task", strconv.FormatInt(id, 10),
		map[string]any{"completed": t.Completed})

	return t, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := s.store.DeleteTask(ctx, userID, id); err != nil {
		return err
	}

	recordActivity(s.activity, userID, "task.delete", "task", strconv.FormatInt(id, 10), nil)

	return nil
}
