package store

// migration holds a single schema migration with its target version and
// the statements that produce it. Statements must run on both SQLite and
// PostgreSQL.
type migration struct {
	version    int
	statements []string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS counters (
	id    TEXT PRIMARY KEY,
	label TEXT NOT NULL,
	value BIGINT NOT NULL DEFAULT 0 CHECK(value >= 0)
)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_counters_label ON counters(label)`,

			`CREATE TABLE IF NOT EXISTS todos (
	id            TEXT PRIMARY KEY,
	text          TEXT NOT NULL,
	completed     BOOLEAN NOT NULL DEFAULT FALSE,
	experience_id TEXT NOT NULL,
	user_id       TEXT NOT NULL,
	created_at    BIGINT NOT NULL,
	completed_at  BIGINT
)`,
			`CREATE INDEX IF NOT EXISTS idx_todos_experience_user
	ON todos(experience_id, user_id, created_at)`,

			`CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT,
	created_at BIGINT NOT NULL
)`,
			`CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at)`,
		},
	},
}
