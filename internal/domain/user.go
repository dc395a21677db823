package domain

import (
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate *Date     `json:"birth_date"`
}

// UserPatch holds the fields a user may change after registration.
// Nil fields are left untouched.
type UserPatch struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	BirthDate *Date   `json:"birth_date,omitempty"`
}

func (p UserPatch) Empty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil && p.BirthDate == nil
}

// Apply merges the non-nil patch fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.BirthDate != nil {
		d := *p.BirthDate
		u.BirthDate = &d
	}
}
