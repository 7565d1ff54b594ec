package client

import (
	"context"
	"fmt"
	"strconv"
)

// TaskService handles the user's tasks.
type TaskService struct {
	c *Client
}

// TaskListOptions narrows a task listing.
type TaskListOptions struct {
	Completed     *bool
	ApplicationID int64
	Limit         int
	Offset        int
}

// taskListResponse wraps the paginated task list response.
type taskListResponse struct {
	Tasks   []Task `json:"tasks"`
	HasMore bool   `json:"has_more"`
}

// List returns tasks with optional filtering and pagination.
func (s *TaskService) List(ctx context.Context, opts *TaskListOptions) ([]Task, bool, error) {
	if opts == nil {
		opts = &TaskListOptions{}
	}
	params := pageParams(opts.Limit, opts.Offset)
	if opts.Completed != nil {
		params.Set("completed", strconv.FormatBool(*opts.Completed))
	}
	if opts.ApplicationID > 0 {
		params.Set("application_id", strconv.FormatInt(opts.ApplicationID, 10))
	}
	var resp taskListResponse
	if err := s.c.get(ctx, "/api/v1/tasks", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Tasks, resp.HasMore, nil
}

// Create adds a task.
func (s *TaskService) Create(ctx context.Context, req TaskRequest) (*Task, error) {
	var task Task
	if err := s.c.post(ctx, "/api/v1/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update replaces a task.
func (s *TaskService) Update(ctx context.Context, id int64, req TaskRequest) (*Task, error) {
	var task Task
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/tasks/%d", id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/api/v1/tasks/%d", id))
}
