package models

import "errors"

// Sentinel errors for validation.
var (
	ErrMissingName      = errors.New("name is required")
	ErrMissingTitle     = errors.New("title is required")
	ErrMissingCompany   = errors.New("company_id is required")
	ErrMissingRole      = errors.New("role_id is required")
	ErrMissingDate      = errors.New("date is required")
	ErrMissingStageType = errors.New("type is required")
	ErrInvalidStageType = errors.New("unknown stage type")
)

// Sentinel errors for entity lookups.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrRoleNotFound        = errors.New("role not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrStageNotFound       = errors.New("stage not found")
	ErrTaskNotFound        = errors.New("task not found")
)

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")
