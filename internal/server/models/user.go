// Package models defines the data models persisted in the database and the
// tri-state patch type used for partial ticket updates.
package models

import "time"

// User is an account that can own tickets. Token holds the single currently
// valid bearer token; nil means logged out. A bearer token is only accepted
// while it matches this column, which is how logout revokes tokens that are
// cryptographically still unexpired.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Token        *string   `json:"token,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}
