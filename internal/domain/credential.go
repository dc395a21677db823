package domain

import "time"

// Credential is the stored login secret for a user. It never leaves the
// credentials collection.
type Credential struct {
	UserName     string    `json:"user_name"`
	PasswordHash string    `json:"password_hash"`
	UpdatedAt    time.Time `json:"updated_at"`
}
