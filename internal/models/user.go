package models

import "time"

// User is an API user. Only admins exist today; they manage the product
// catalog and stock levels.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
