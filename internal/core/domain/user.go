package domain

import "time"

// User models a registered account. Usernames are unique and immutable.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Caller is the identity resolved by the auth middleware for one request.
type Caller struct {
	ID       int64
	Username string
}
