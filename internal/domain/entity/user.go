package entity

import "time"

// User represents a registered account.
// PasswordHash holds a bcrypt hash, never the cleartext password.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
