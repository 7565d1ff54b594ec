package models

import (
	"strings"
	"time"
)

// Role is a position at a company. Applications from every user to the same
// role feed that role's world view.
type Role struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Title     string    `json:"title"`
	Year      *int      `json:"year,omitempty"`
	URL       *string   `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleWithCompany is a role joined with its company.
type RoleWithCompany struct {
	Role
	Company Company `json:"company"`
}

// CreateRoleRequest is the payload for creating a role.
type CreateRoleRequest struct {
	CompanyID int64   `json:"company_id"`
	Title     string  `json:"title" validate:"max=255"`
	Year      *int    `json:"year,omitempty" validate:"omitempty,gte=1970,lte=2200"`
	URL       *string `json:"url,omitempty" validate:"omitempty,http_url,max=2048"`
}

// Validate checks CreateRoleRequest fields and trims the title.
func (r *CreateRoleRequest) Validate() error {
	if r.CompanyID <= 0 {
		return ErrMissingCompany
	}

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return ErrMissingTitle
	}

	return validateStruct(r)
}
