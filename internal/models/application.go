package models

import (
	"time"

	"github.com/google/uuid"
)

// Application is one user's application to a role.
type Application struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"-"`
	RoleID    int64     `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ApplicationSummary is an application joined with its role, company and the
// latest stage, as shown in a user's list.
type ApplicationSummary struct {
	Application
	RoleTitle   string     `json:"role_title"`
	CompanyID   int64      `json:"company_id"`
	CompanyName string     `json:"company_name"`
	LatestStage *StageType `json:"latest_stage,omitempty"`
	LatestDate  *time.Time `json:"latest_date,omitempty"`
}

// ApplicationDetail is an application with its full stage history.
type ApplicationDetail struct {
	Application
	Role   RoleWithCompany `json:"role"`
	Stages []Stage         `json:"stages"`
}

// CreateApplicationRequest is the payload for creating an application. The
// APPLIED stage is recorded at AppliedAt.
type CreateApplicationRequest struct {
	RoleID          int64     `json:"role_id"`
	AppliedAt       time.Time `json:"applied_at"`
	EmojiUnicodeHex *string   `json:"emoji_unicode_hex,omitempty" validate:"omitempty,hexadecimal,max=16"`
	Remark          *string   `json:"remark,omitempty" validate:"omitempty,max=2000"`
}

// Validate checks CreateApplicationRequest fields.
func (r *CreateApplicationRequest) Validate() error {
	if r.RoleID <= 0 {
		return ErrMissingRole
	}

	if r.AppliedAt.IsZero() {
		return ErrMissingDate
	}

	return validateStruct(r)
}

// FirstStage returns the APPLIED stage request implied by r.
func (r *CreateApplicationRequest) FirstStage() StageRequest {
	return StageRequest{
		Type:            StageApplied,
		Date:            r.AppliedAt,
		EmojiUnicodeHex: r.EmojiUnicodeHex,
		Remark:          r.Remark,
	}
}
