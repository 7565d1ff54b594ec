package client

import (
	"context"
	"fmt"
)

// ApplicationService handles the user's applications.
type ApplicationService struct {
	c *Client
}

// applicationListResponse wraps the paginated application list response.
type applicationListResponse struct {
	Applications []Application `json:"applications"`
	HasMore      bool          `json:"has_more"`
}

// List returns the user's applications, newest first.
func (s *ApplicationService) List(ctx context.Context, limit, offset int) ([]Application, bool, error) {
	var resp applicationListResponse
	if err := s.c.get(ctx, "/api/v1/applications", pageParams(limit, offset), &resp); err != nil {
		return nil, false, err
	}
	return resp.Applications, resp.HasMore, nil
}

// Get returns an application with its role and stages.
func (s *ApplicationService) Get(ctx context.Context, id int64) (*Application, error) {
	var app Application
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/applications/%d", id), nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Create records a new application and its APPLIED stage.
func (s *ApplicationService) Create(ctx context.Context, req CreateApplicationRequest) (*Application, error) {
	var app Application
	if err := s.c.post(ctx, "/api/v1/applications", req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Delete removes an application with its stages.
func (s *ApplicationService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/api/v1/applications/%d", id))
}
