package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/applytrail/applytrail/internal/api"
	"github.com/applytrail/applytrail/internal/models"
)

func newApplicationRouter(repo *mockApplicationRepo) http.Handler {
	h := api.NewApplicationHandler(repo, testLogger())
	r := newTestRouter()
	r.GET("/applications", h.List)
	r.POST("/applications", h.Create)
	r.GET("/applications/:id", h.Get)
	r.DELETE("/applications/:id", h.Delete)

	return r
}

func TestCreateApplication_Success(t *testing.T) {
	t.Parallel()

	appliedAt := time.Date(2024, time.February, 1, 9, 30, 0, 0, time.UTC)
	repo := &mockApplicationRepo{
		createFn: func(_ context.Context, _ uuid.UUID, req models.CreateApplicationRequest) (*models.ApplicationDetail, error) {
			first := req.FirstStage()
			if first.Type != models.StageApplied || !first.Date.Equal(appliedAt) {
				t.Errorf("unexpected first stage %+v", first)
			}

			return &models.ApplicationDetail{
				Application: models.Application{ID: 11, RoleID: req.RoleID},
				Stages:      []models.Stage{{ID: 1, ApplicationID: 11, Type: first.Type, Date: first.Date}},
			}, nil
		},
	}

	w := doRequest(newApplicationRouter(repo), http.MethodPost, "/applications",
		`{"role_id":4,"applied_at":"2024-02-01T09:30:00Z"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body models.ApplicationDetail
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body.ID != 11 || len(body.Stages) != 1 {
		t.Errorf("unexpected application %+v", body)
	}
}

func TestCreateApplication_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "missing role", body: `{"applied_at":"2024-02-01T09:30:00Z"}`, wantStatus: http.StatusBadRequest, wantCode: api.ErrCodeValidationError},
		{name: "missing date", body: `{"role_id":4}`, wantStatus: http.StatusBadRequest, wantCode: api.ErrCodeValidationError},
		{name: "unknown role", body: `{"role_id":4,"applied_at":"2024-02-01T09:30:00Z"}`, err: fmt.Errorf("role 4: %w", models.ErrRoleNotFound), wantStatus: http.StatusBadRequest, wantCode: api.ErrCodeInvalidReference},
		{name: "already applied", body: `{"role_id":4,"applied_at":"2024-02-01T09:30:00Z"}`, err: models.ErrDuplicateKey, wantStatus: http.StatusConflict, wantCode: api.ErrCodeConflict},
		{name: "store failure", body: `{"role_id":4,"applied_at":"2024-02-01T09:30:00Z"}`, err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError, wantCode: api.ErrCodeInternalError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockApplicationRepo{
				createFn: func(context.Context, uuid.UUID, models.CreateApplicationRequest) (*models.ApplicationDetail, error) {
					return nil, tc.err
				},
			}

			w := doRequest(newApplicationRouter(repo), http.MethodPost, "/applications", tc.body)
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

func TestApplication_OtherUsersAreNotFound(t *testing.T) {
	t.Parallel()

	owner := uuid.MustParse("00000000-0000-0000-0000-0000000000aa")
	repo := &mockApplicationRepo{
		getFn: func(_ context.Context, userID uuid.UUID, id int64) (*models.ApplicationDetail, error) {
			if userID != owner {
				return nil, fmt.Errorf("application %d: %w", id, models.ErrApplicationNotFound)
			}

			return &models.ApplicationDetail{Application: models.Application{ID: id}}, nil
		},
		deleteFn: func(_ context.Context, userID uuid.UUID, id int64) error {
			if userID != owner {
				return fmt.Errorf("application %d: %w", id, models.ErrApplicationNotFound)
			}

			return nil
		},
	}
	r := newApplicationRouter(repo)

	if w := doRequest(r, http.MethodGet, "/applications/5", ""); w.Code != http.StatusNotFound {
		t.Errorf("get: expected 404, got %d", w.Code)
	}

	if w := doRequest(r, http.MethodDelete, "/applications/5", ""); w.Code != http.StatusNotFound {
		t.Errorf("delete: expected 404, got %d", w.Code)
	}
}

func TestListApplications_Pagination(t *testing.T) {
	t.Parallel()

	repo := &mockApplicationRepo{
		listFn: func(_ context.Context, _ uuid.UUID, limit, offset int) ([]models.ApplicationSummary, bool, error) {
			if limit != 1000 || offset != 0 {
				t.Errorf("expected clamped limit 1000 and offset 0, got %d/%d", limit, offset)
			}

			return []models.ApplicationSummary{{Application: models.Application{ID: 1}}}, true, nil
		},
	}

	w := doRequest(newApplicationRouter(repo), http.MethodGet, "/applications?limit=5000&offset=-3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Applications []models.ApplicationSummary `json:"applications"`
		HasMore      bool                        `json:"has_more"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if !body.HasMore || len(body.Applications) != 1 {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestDeleteApplication_NoContent(t *testing.T) {
	t.Parallel()

	repo := &mockApplicationRepo{
		deleteFn: func(context.Context, uuid.UUID, int64) error { return nil },
	}

	if w := doRequest(newApplicationRouter(repo), http.MethodDelete, "/applications/5", ""); w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}
