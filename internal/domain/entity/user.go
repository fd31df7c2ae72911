package entity

import "time"

// User is a store owner account. All catalog-management and sale-recording
// routes require an authenticated user; the public price list does not.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after persisting
	Name         string
	CreatedAt    time.Time
}
