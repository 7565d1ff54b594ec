// Package models defines data types for companies, roles, applications and
// their stages.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns applications and tasks. Anonymous users only
// hold a session token.
type User struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSessionRequest is the optional payload for starting an anonymous session.
type CreateSessionRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"max=100"`
}

// Validate checks CreateSessionRequest fields.
func (r *CreateSessionRequest) Validate() error {
	return validateStruct(r)
}

// Session is returned when a session token is issued.
type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
