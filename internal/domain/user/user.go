// Package user defines the User aggregate.
package user

import "time"

// User is a single indexed user document.
//
// IsActive carries "true"/"false" as a string. The wire contract inherited
// from existing clients transmits it that way; do not convert it to a bool
// without versioning the API.
type User struct {
	ID        string
	Username  string
	Email     string
	FullName  string
	Bio       string
	IsActive  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stamp applies persistence timestamps: CreatedAt is set exactly once, on the
// first save; UpdatedAt is set on every save.
func (u *User) Stamp(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}
