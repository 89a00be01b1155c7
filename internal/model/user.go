package model

import "time"

// User is an entry in the local user directory. It is unrelated to the
// platform's own user accounts.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
