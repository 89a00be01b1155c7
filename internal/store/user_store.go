package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nhle/whop-starter/internal/model"
)

type userRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Email     sql.NullString `db:"email"`
	CreatedAt int64          `db:"created_at"`
}

// CreateUser inserts a user. Names and emails need not be unique.
func (s *SQLStore) CreateUser(
	ctx context.Context,
	name string,
	email *string,
) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("user name must not be empty: %w", ErrInvalidArgument)
	}

	id, err := newID()
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx,
		s.db.Rebind("INSERT INTO users (id, name, email, created_at) VALUES (?, ?, ?, ?)"),
		id, name, email, s.nowMillis(),
	)
	if err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}
	return id, nil
}

// ListUsers returns all users, oldest first.
func (s *SQLStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var rows []userRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT id, name, email, created_at FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}

	users := make([]model.User, 0, len(rows))
	for _, r := range rows {
		u := model.User{
			ID:        r.ID,
			Name:      r.Name,
			CreatedAt: fromMillis(r.CreatedAt),
		}
		if r.Email.Valid {
			email := r.Email.String
			u.Email = &email
		}
		users = append(users, u)
	}
	return users, nil
}
