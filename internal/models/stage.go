package models

import (
	"fmt"
	"time"
)

// StageType is the kind of recruitment phase a stage records.
type StageType string

// Stage types. The set is closed; switches over StageType list every variant.
const (
	StageApplied          StageType = "APPLIED"
	StageOnlineAssessment StageType = "ONLINE_ASSESSMENT"
	StageTechnical        StageType = "TECHNICAL"
	StageNonTechnical     StageType = "NON_TECHNICAL"
	StageMixed            StageType = "MIXED"
	StageOffered          StageType = "OFFERED"
	StageAccepted         StageType = "ACCEPTED"
	StageRejected         StageType = "REJECTED"
	StageWithdrawn        StageType = "WITHDRAWN"
)

// StageTypes lists every stage type in funnel order.
var StageTypes = []StageType{
	StageApplied,
	StageOnlineAssessment,
	StageTechnical,
	StageNonTechnical,
	StageMixed,
	StageOffered,
	StageAccepted,
	StageRejected,
	StageWithdrawn,
}

// Valid reports whether t is one of the known stage types.
func (t StageType) Valid() bool {
	switch t {
	case StageApplied, StageOnlineAssessment, StageTechnical, StageNonTechnical,
		StageMixed, StageOffered, StageAccepted, StageRejected, StageWithdrawn:
		return true
	default:
		return false
	}
}

// IsFirst reports whether t is the mandatory opening stage.
func (t StageType) IsFirst() bool {
	switch t {
	case StageApplied:
		return true
	case StageOnlineAssessment, StageTechnical, StageNonTechnical, StageMixed,
		StageOffered, StageAccepted, StageRejected, StageWithdrawn:
		return false
	default:
		return false
	}
}

// IsFinal reports whether t is a terminal outcome that nothing may follow.
func (t StageType) IsFinal() bool {
	switch t {
	case StageAccepted, StageRejected, StageWithdrawn:
		return true
	case StageApplied, StageOnlineAssessment, StageTechnical, StageNonTechnical,
		StageMixed, StageOffered:
		return false
	default:
		return false
	}
}

// IsAnchor reports whether t keeps the same world-graph node regardless of the
// path that reached it. OFFERED stays path-dependent.
func (t StageType) IsAnchor() bool {
	switch t {
	case StageApplied, StageAccepted, StageRejected, StageWithdrawn:
		return true
	case StageOnlineAssessment, StageTechnical, StageNonTechnical, StageMixed, StageOffered:
		return false
	default:
		return false
	}
}

// ParseStageType converts s into a StageType, rejecting unknown values.
func ParseStageType(s string) (StageType, error) {
	t := StageType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStageType, s)
	}

	return t, nil
}

// Stage is a persisted stage event belonging to one application.
type Stage struct {
	ID              int64     `json:"id"`
	ApplicationID   int64     `json:"application_id"`
	Type            StageType `json:"type"`
	Date            time.Time `json:"date"`
	EmojiUnicodeHex *string   `json:"emoji_unicode_hex,omitempty"`
	Remark          *string   `json:"remark,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StageCheck inspects the stage set an application would have after a write.
// A non-nil error aborts the write and is returned unchanged.
type StageCheck func(stages []Stage) error

// StageRequest is the payload for creating or replacing a stage.
type StageRequest struct {
	Type            StageType `json:"type" validate:"required"`
	Date            time.Time `json:"date" validate:"required"`
	EmojiUnicodeHex *string   `json:"emoji_unicode_hex,omitempty" validate:"omitempty,hexadecimal,max=16"`
	Remark          *string   `json:"remark,omitempty" validate:"omitempty,max=2000"`
}

// Validate checks StageRequest fields.
func (r *StageRequest) Validate() error {
	if r.Type == "" {
		return ErrMissingStageType
	}

	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStageType, r.Type)
	}

	if r.Date.IsZero() {
		return ErrMissingDate
	}

	return validateStruct(r)
}
