package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/applytrail/applytrail/internal/models"
)

// TaskStore provides owner-scoped task operations.
type TaskStore struct {
	Base
}

// NewTaskStore creates a new TaskStore.
func NewTaskStore(base Base) *TaskStore {
	return &TaskStore{Base: base}
}

// ListTasks returns the user's tasks, open ones first and then by due date.
func (s *TaskStore) ListTasks(ctx context.Context, userID uuid.UUID, f models.TaskFilter) ([]models.Task, bool, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = $1"
	args := []any{userID}

	if f.Completed != nil {
		args = append(args, *f.Completed)
		query += fmt.Sprintf(" AND completed = $%d", len(args))
	}

	if f.ApplicationID != nil {
		args = append(args, *f.ApplicationID)
		query += fmt.Sprintf(" AND application_id = $%d", len(args))
	}

	query += fmt.Sprintf(" ORDER BY completed, due_date ASC NULLS LAST, id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit+1, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := collect(rows, "task", scanTask)
	if err != nil {
		return nil, false, err
	}

	tasks, hasMore := trimPage(tasks, limit)

	return tasks, hasMore, nil
}

// CreateTask inserts a task for the user.
func (s *TaskStore) CreateTask(ctx context.Context, userID uuid.UUID, req models.TaskRequest) (*models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := checkTaskApplication(ctx, tx, userID, req.ApplicationID); err != nil {
		return nil, err
	}

	t, err := scanTask(tx.QueryRow(ctx,
		`INSERT INTO tasks (user_id, application_id, title, due_date, notify_on_due, completed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+taskColumns,
		userID, req.ApplicationID, req.Title, req.DueDate, req.NotifyOnDue, req.Completed,
	).Scan)
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing task: %w", err)
	}

	return t, nil
}

// UpdateTask replaces one of the user's tasks.
func (s *TaskStore) UpdateTask(ctx context.Context, userID uuid.UUID, id int64, req models.TaskRequest) (*models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := checkTaskApplication(ctx, tx, userID, req.ApplicationID); err != nil {
		return nil, err
	}

	t, err := scanTask(tx.QueryRow(ctx,
		`UPDATE tasks
		 SET application_id = $1, title = $2, due_date = $3, notify_on_due = $4, completed = $5, updated_at = now()
		 WHERE id = $6 AND user_id = $7
		 RETURNING `+taskColumns,
		req.ApplicationID, req.Title, req.DueDate, req.NotifyOnDue, req.Completed, id, userID,
	).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrTaskNotFound
		}

		return nil, fmt.Errorf("updating task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing task: %w", err)
	}

	return t, nil
}

// DeleteTask removes one of the user's tasks.
func (s *TaskStore) DeleteTask(ctx context.Context, userID uuid.UUID, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrTaskNotFound
	}

	return nil
}

// checkTaskApplication verifies that a linked application belongs to the user.
func checkTaskApplication(ctx context.Context, tx pgx.Tx, userID uuid.UUID, appID *int64) error {
	if appID == nil {
		return nil
	}

	var id int64

	err := tx.QueryRow(ctx, "SELECT id FROM applications WHERE id = $1 AND user_id = $2", *appID, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("application %d: %w", *appID, models.ErrApplicationNotFound)
		}

		return fmt.Errorf("checking application: %w", err)
	}

	return nil
}
