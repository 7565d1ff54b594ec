package models

import "time"

// ActivityEntry is one recorded mutation in a user's activity feed.
type ActivityEntry struct {
	ID         int64          `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ActivityQuery narrows an activity listing.
type ActivityQuery struct {
	EntityType string
	Since      *time.Time
	Limit      int
	Offset     int
}
