package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nhle/whop-starter/internal/model"
)

const todoColumns = "id, text, completed, experience_id, user_id, created_at, completed_at"

// todoRow mirrors the todos table.
type todoRow struct {
	ID           string        `db:"id"`
	Text         string        `db:"text"`
	Completed    bool          `db:"completed"`
	ExperienceID string        `db:"experience_id"`
	UserID       string        `db:"user_id"`
	CreatedAt    int64         `db:"created_at"`
	CompletedAt  sql.NullInt64 `db:"completed_at"`
}

func (r todoRow) toModel() model.Todo {
	todo := model.Todo{
		ID:           r.ID,
		Text:         r.Text,
		Completed:    r.Completed,
		ExperienceID: r.ExperienceID,
		UserID:       r.UserID,
		CreatedAt:    fromMillis(r.CreatedAt),
	}
	if r.CompletedAt.Valid {
		completedAt := fromMillis(r.CompletedAt.Int64)
		todo.CompletedAt = &completedAt
	}
	return todo
}

// CreateTodo inserts an open todo for the given scope and returns its ID.
func (s *SQLStore) CreateTodo(
	ctx context.Context,
	text, experienceID, userID string,
) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("todo text must not be empty: %w", ErrInvalidArgument)
	}

	id, err := newID()
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO todos (
			id, text, completed, experience_id, user_id, created_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, NULL)`),
		id, text, false, experienceID, userID, s.nowMillis(),
	)
	if err != nil {
		return "", fmt.Errorf("creating todo: %w", err)
	}
	return id, nil
}

// ListTodos returns the todos of one scope, newest first.
func (s *SQLStore) ListTodos(
	ctx context.Context,
	experienceID, userID string,
) ([]model.Todo, error) {
	var rows []todoRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT `+todoColumns+` FROM todos
		WHERE experience_id = ? AND user_id = ?
		ORDER BY created_at DESC, id DESC`),
		experienceID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying todos for %s/%s: %w", experienceID, userID, err)
	}

	todos := make([]model.Todo, 0, len(rows))
	for _, r := range rows {
		todos = append(todos, r.toModel())
	}
	return todos, nil
}

// GetTodo retrieves a single todo by ID.
func (s *SQLStore) GetTodo(ctx context.Context, id string) (*model.Todo, error) {
	return s.todoQuery(ctx, "getting todo "+id,
		"SELECT "+todoColumns+" FROM todos WHERE id = ?", id)
}

// ToggleTodo flips completed and stamps or clears completed_at in one
// statement. The CASE reads the pre-update value of completed.
func (s *SQLStore) ToggleTodo(ctx context.Context, id string) (*model.Todo, error) {
	return s.todoQuery(ctx, "toggling todo "+id, `
		UPDATE todos SET
			completed = NOT completed,
			completed_at = CASE WHEN completed THEN NULL ELSE CAST(? AS BIGINT) END
		WHERE id = ?
		RETURNING `+todoColumns,
		s.nowMillis(), id,
	)
}

// UpdateTodoText replaces the text of a todo, even when it is unchanged.
func (s *SQLStore) UpdateTodoText(
	ctx context.Context,
	id, text string,
) (*model.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("todo text must not be empty: %w", ErrInvalidArgument)
	}
	return s.todoQuery(ctx, "updating todo "+id,
		"UPDATE todos SET text = ? WHERE id = ? RETURNING "+todoColumns,
		text, id,
	)
}

// RemoveTodo deletes a todo and returns it as it was before deletion.
func (s *SQLStore) RemoveTodo(ctx context.Context, id string) (*model.Todo, error) {
	return s.todoQuery(ctx, "deleting todo "+id,
		"DELETE FROM todos WHERE id = ? RETURNING "+todoColumns, id)
}

// todoQuery runs a statement returning at most one todo row. No row
// means the todo does not exist.
func (s *SQLStore) todoQuery(
	ctx context.Context,
	op string,
	query string,
	args ...any,
) (*model.Todo, error) {
	var row todoRow
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(query), args...).StructScan(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	todo := row.toModel()
	return &todo, nil
}
