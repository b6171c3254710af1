package models

import "time"

const (
	ActionUserRegistered = "user.registered"
	ActionUserLoggedIn   = "user.logged_in"
	ActionBioUpdated     = "user.bio_updated"
	ActionPostCreated    = "post.created"
)

// Activity is an append-only audit record of a successful mutation.
type Activity struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}
