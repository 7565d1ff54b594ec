package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/applytrail/applytrail/internal/api"
	"github.com/applytrail/applytrail/internal/models"
)

func TestCompanies(t *testing.T) {
	t.Parallel()

	var gotPrefix string
	catalog := &mockCatalogRepo{
		listCompaniesFn: func(_ context.Context, prefix string, _, _ int) ([]models.Company, bool, error) {
			gotPrefix = prefix
			return []models.Company{{ID: 1, Name: "Acme"}}, false, nil
		},
		getCompanyFn: func(context.Context, int64) (*models.Company, error) {
			return nil, models.ErrCompanyNotFound
		},
		createCompanyFn: func(_ context.Context, _ uuid.UUID, req models.CreateCompanyRequest) (*models.Company, error) {
			if req.Name == "Acme" {
				return nil, models.ErrDuplicateKey
			}

			return &models.Company{ID: 2, Name: req.Name}, nil
		},
	}

	h := api.NewCompanyHandler(catalog, testLogger())
	r := newTestRouter()
	r.GET("/companies", h.List)
	r.GET("/companies/:id", h.Get)
	r.POST("/companies", h.Create)

	if w := doRequest(r, http.MethodGet, "/companies?q=+ac+", ""); w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}

	if gotPrefix != "ac" {
		t.Errorf("expected trimmed prefix 'ac', got %q", gotPrefix)
	}

	if w := doRequest(r, http.MethodGet, "/companies?q="+strings.Repeat("a", 300), ""); w.Code != http.StatusBadRequest {
		t.Errorf("long prefix: expected 400, got %d", w.Code)
	}

	if w := doRequest(r, http.MethodGet, "/companies/1", ""); w.Code != http.StatusNotFound {
		t.Errorf("get: expected 404, got %d", w.Code)
	}

	if w := doRequest(r, http.MethodPost, "/companies", `{"name":"Initech"}`); w.Code != http.StatusCreated {
		t.Errorf("create: expected 201, got %d", w.Code)
	}

	if w := doRequest(r, http.MethodPost, "/companies", `{"name":"Acme"}`); w.Code != http.StatusConflict {
		t.Errorf("duplicate: expected 409, got %d", w.Code)
	}

	if w := doRequest(r, http.MethodPost, "/companies", `{"name":"Acme","url":"not a url"}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad url: expected 400, got %d", w.Code)
	}
}
