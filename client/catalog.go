package client

import (
	"context"
	"fmt"
)

// CatalogService reads the shared company and role catalog.
type CatalogService struct {
	c *Client
}

// companyListResponse wraps the paginated company list response.
type companyListResponse struct {
	Companies []Company `json:"companies"`
	HasMore   bool      `json:"has_more"`
}

// SearchCompanies returns companies whose name starts with prefix.
func (s *CatalogService) SearchCompanies(ctx context.Context, prefix string, limit, offset int) ([]Company, bool, error) {
	params := pageParams(limit, offset)
	if prefix != "" {
		params.Set("q", prefix)
	}
	var resp companyListResponse
	if err := s.c.get(ctx, "/api/v1/companies", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Companies, resp.HasMore, nil
}

// GetRole returns a role with its company.
func (s *CatalogService) GetRole(ctx context.Context, id int64) (*Role, error) {
	var role Role
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/roles/%d", id), nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// World returns the aggregated stage-transition graph of a role.
func (s *CatalogService) World(ctx context.Context, roleID int64) (*WorldView, error) {
	var view WorldView
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/roles/%d/world", roleID), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}
