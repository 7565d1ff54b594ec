package client

import (
	"context"
	"fmt"
)

// StageService handles the stages of an application. Writes that would put
// the stages out of order fail with an error for which IsChronologyViolation
// reports true.
type StageService struct {
	c *Client
}

// List returns the stages of an application.
func (s *StageService) List(ctx context.Context, appID int64) ([]Stage, error) {
	var resp struct {
		Stages []Stage `json:"stages"`
	}
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/applications/%d/stages", appID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Stages, nil
}

// Add appends a stage to an application.
func (s *StageService) Add(ctx context.Context, appID int64, req StageRequest) (*Stage, error) {
	var stage Stage
	if err := s.c.post(ctx, fmt.Sprintf("/api/v1/applications/%d/stages", appID), req, &stage); err != nil {
		return nil, err
	}
	return &stage, nil
}

// Update replaces a stage.
func (s *StageService) Update(ctx context.Context, appID, stageID int64, req StageRequest) (*Stage, error) {
	var stage Stage
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/applications/%d/stages/%d", appID, stageID), req, &stage); err != nil {
		return nil, err
	}
	return &stage, nil
}

// Delete removes a stage.
func (s *StageService) Delete(ctx context.Context, appID, stageID int64) error {
	return s.c.del(ctx, fmt.Sprintf("/api/v1/applications/%d/stages/%d", appID, stageID))
}
