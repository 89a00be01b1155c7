package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nhle/whop-starter/internal/model"
)

// GetCounter returns the value stored for label, or 0 if none exists.
func (s *SQLStore) GetCounter(ctx context.Context, label string) (int64, error) {
	var value int64
	err := s.db.GetContext(ctx, &value,
		s.db.Rebind("SELECT value FROM counters WHERE label = ?"), label)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("getting counter %q: %w", label, err)
	}
	return value, nil
}

// GetCounterTotal returns the sum of all counters.
func (s *SQLStore) GetCounterTotal(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.GetContext(ctx, &total,
		"SELECT CAST(COALESCE(SUM(value), 0) AS BIGINT) FROM counters")
	if err != nil {
		return 0, fmt.Errorf("summing counters: %w", err)
	}
	return total, nil
}

// IncrementCounter inserts the counter at 1 or bumps the existing row in a
// single statement, so concurrent first increments cannot create duplicates.
func (s *SQLStore) IncrementCounter(ctx context.Context, label string) (int64, error) {
	label = model.CounterLabel(label)

	id, err := newID()
	if err != nil {
		return 0, err
	}
	var value int64
	err = s.db.GetContext(ctx, &value, s.db.Rebind(`
		INSERT INTO counters (id, label, value) VALUES (?, ?, 1)
		ON CONFLICT (label) DO UPDATE SET value = counters.value + 1
		RETURNING value`),
		id, label,
	)
	if err != nil {
		return 0, fmt.Errorf("incrementing counter %q: %w", label, err)
	}
	return value, nil
}

// ResetCounter zeroes the counter for label if it exists. A missing
// counter is left missing.
func (s *SQLStore) ResetCounter(ctx context.Context, label string) (int64, error) {
	label = model.CounterLabel(label)

	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("UPDATE counters SET value = 0 WHERE label = ?"), label)
	if err != nil {
		return 0, fmt.Errorf("resetting counter %q: %w", label, err)
	}
	return 0, nil
}
