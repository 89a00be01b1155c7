package model

import "time"

// Todo is a task item scoped to one (experience, user) pair.
// The scope is fixed at creation.
type Todo struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	Completed    bool       `json:"completed"`
	ExperienceID string     `json:"experience_id"`
	UserID       string     `json:"user_id"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// OwnedBy reports whether the todo belongs to the given scope.
func (t Todo) OwnedBy(experienceID, userID string) bool {
	return t.ExperienceID == experienceID && t.UserID == userID
}
