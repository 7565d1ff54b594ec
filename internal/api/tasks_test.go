package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/applytrail/applytrail/internal/api"
	"github.com/applytrail/applytrail/internal/models"
)

func newTaskRouter(repo *mockTaskRepo) http.Handler {
	h := api.NewTaskHandler(repo, testLogger())
	r := newTestRouter()
	r.GET("/tasks", h.List)
	r.POST("/tasks", h.Create)
	r.PUT("/tasks/:id", h.Update)
	r.DELETE("/tasks/:id", h.Delete)

	return r
}

func TestListTasks_Filters(t *testing.T) {
	t.Parallel()

	var got models.TaskFilter
	repo := &mockTaskRepo{
		listFn: func(_ context.Context, _ uuid.UUID, f models.TaskFilter) ([]models.Task, bool, error) {
			got = f
			return []models.Task{}, false, nil
		},
	}
	r := newTaskRouter(repo)

	if w := doRequest(r, http.MethodGet, "/tasks?completed=false&application_id=8", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if got.Completed == nil || *got.Completed {
		t.Errorf("expected completed=false filter, got %v", got.Completed)
	}

	if got.ApplicationID == nil || *got.ApplicationID != 8 {
		t.Errorf("expected application filter 8, got %v", got.ApplicationID)
	}

	if w := doRequest(r, http.MethodGet, "/tasks?completed=maybe", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad completed, got %d", w.Code)
	}
}

func TestTaskMutations_ErrorMapping(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		createFn: func(_ context.Context, _ uuid.UUID, req models.TaskRequest) (*models.Task, error) {
			return nil, fmt.Errorf("application %d: %w", *req.ApplicationID, models.ErrApplicationNotFound)
		},
		updateFn: func(_ context.Context, _ uuid.UUID, id int64, _ models.TaskRequest) (*models.Task, error) {
			return nil, fmt.Errorf("task %d: %w", id, models.ErrTaskNotFound)
		},
		deleteFn: func(_ context.Context, _ uuid.UUID, id int64) error {
			return fmt.Errorf("task %d: %w", id, models.ErrTaskNotFound)
		},
	}
	r := newTaskRouter(repo)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "create with foreign application", method: http.MethodPost, path: "/tasks", body: `{"title":"Follow up","application_id":77}`, wantStatus: http.StatusBadRequest, wantCode: api.ErrCodeInvalidReference},
		{name: "create without title", method: http.MethodPost, path: "/tasks", body: `{"title":" "}`, wantStatus: http.StatusBadRequest, wantCode: api.ErrCodeValidationError},
		{name: "notify without due date", method: http.MethodPost, path: "/tasks", body: `{"title":"x","notify_on_due":true}`, wantStatus: http.StatusBadRequest, wantCode: api.ErrCodeValidationError},
		{name: "update unknown task", method: http.MethodPut, path: "/tasks/3", body: `{"title":"x"}`, wantStatus: http.StatusNotFound, wantCode: api.ErrCodeNotFound},
		{name: "delete unknown task", method: http.MethodDelete, path: "/tasks/3", wantStatus: http.StatusNotFound, wantCode: api.ErrCodeNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, tc.method, tc.path, tc.body)
			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, w.Code, w.Body.String())
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}

			if body["code"] != tc.wantCode {
				t.Errorf("expected code %q, got %q", tc.wantCode, body["code"])
			}
		})
	}
}

func TestCreateTask_Success(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		createFn: func(_ context.Context, _ uuid.UUID, req models.TaskRequest) (*models.Task, error) {
			return &models.Task{ID: 2, Title: req.Title}, nil
		},
	}

	w := doRequest(newTaskRouter(repo), http.MethodPost, "/tasks", `{"title":"  Send thank-you note  "}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if task.Title != "Send thank-you note" {
		t.Errorf("expected trimmed title, got %q", task.Title)
	}
}
