package models

import (
	"strings"
	"time"
)

// Company is an employer shared by all users.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       *string   `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCompanyRequest is the payload for creating a company.
type CreateCompanyRequest struct {
	Name string  `json:"name" validate:"max=255"`
	URL  *string `json:"url,omitempty" validate:"omitempty,http_url,max=2048"`
}

// Validate checks CreateCompanyRequest fields and trims the name.
func (r *CreateCompanyRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return ErrMissingName
	}

	return validateStruct(r)
}
