package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is a to-do or reminder, optionally tied to one of the user's applications.
type Task struct {
	ID            int64      `json:"id"`
	UserID        uuid.UUID  `json:"-"`
	ApplicationID *int64     `json:"application_id,omitempty"`
	Title         string     `json:"title"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	NotifyOnDue   bool       `json:"notify_on_due"`
	Completed     bool       `json:"completed"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TaskRequest is the payload for creating or replacing a task.
type TaskRequest struct {
	ApplicationID *int64     `json:"application_id,omitempty"`
	Title         string     `json:"title" validate:"max=500"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	NotifyOnDue   bool       `json:"notify_on_due"`
	Completed     bool       `json:"completed"`
}

// Validate checks TaskRequest fields and trims the title.
func (r *TaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return ErrMissingTitle
	}

	if r.NotifyOnDue && r.DueDate == nil {
		return ErrMissingDate
	}

	return validateStruct(r)
}

// TaskFilter narrows a task listing.
type TaskFilter struct {
	Completed     *bool
	ApplicationID *int64
	Limit         int
	Offset        int
}
