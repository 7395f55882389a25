package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS todos (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT    NOT NULL,
	description TEXT    NOT NULL DEFAULT '',
	completed   INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	status      TEXT    NOT NULL DEFAULT 'pending',
	priority    TEXT    NOT NULL DEFAULT 'medium',
	due_date    TEXT    NOT NULL DEFAULT '',
	category    TEXT    NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todos_status ON todos(status);
CREATE INDEX IF NOT EXISTS idx_todos_priority ON todos(priority);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
ALTER TABLE todos ADD COLUMN latitude REAL;
ALTER TABLE todos ADD COLUMN longitude REAL;
ALTER TABLE todos ADD COLUMN address TEXT;

CREATE INDEX IF NOT EXISTS idx_todos_located
	ON todos(latitude, longitude) WHERE latitude IS NOT NULL;

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
