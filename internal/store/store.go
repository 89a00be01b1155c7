package store

import (
	"context"
	"errors"

	"github.com/nhle/whop-starter/internal/model"
)

var (
	// ErrNotFound is returned when an operation references a missing record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for empty required fields.
	ErrInvalidArgument = errors.New("invalid argument")
)

// CounterStore keeps labeled counters.
type CounterStore interface {
	// GetCounter returns the value for label, or 0 when no counter exists.
	GetCounter(ctx context.Context, label string) (int64, error)

	// GetCounterTotal returns the sum of every counter's value.
	GetCounterTotal(ctx context.Context) (int64, error)

	// IncrementCounter adds one to the counter for label (DefaultCounterLabel
	// when empty), creating it at 1 if needed, and returns the new value.
	IncrementCounter(ctx context.Context, label string) (int64, error)

	// ResetCounter sets an existing counter to 0. It never creates one.
	ResetCounter(ctx context.Context, label string) (int64, error)
}

// TodoStore keeps todos scoped by (experience, user).
type TodoStore interface {
	CreateTodo(ctx context.Context, text, experienceID, userID string) (string, error)
	ListTodos(ctx context.Context, experienceID, userID string) ([]model.Todo, error)
	GetTodo(ctx context.Context, id string) (*model.Todo, error)
	ToggleTodo(ctx context.Context, id string) (*model.Todo, error)
	UpdateTodoText(ctx context.Context, id, text string) (*model.Todo, error)
	RemoveTodo(ctx context.Context, id string) (*model.Todo, error)
}

// UserDirectory keeps the local user records.
type UserDirectory interface {
	CreateUser(ctx context.Context, name string, email *string) (string, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// Store is the full persistence surface used by the HTTP layer and the console.
type Store interface {
	CounterStore
	TodoStore
	UserDirectory

	Ping(ctx context.Context) error
	Close() error
}
