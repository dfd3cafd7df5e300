package store

// schemaVersion1 is the initial schema.
const schemaVersion1 = 1

// currentSchemaVersion is the target schema version for this build.
const currentSchemaVersion = schemaVersion1

// schema1 is the initial DDL: attempts plus per-quantity check rows.
var schema1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS attempts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	kind       TEXT NOT NULL,
	worksheet  TEXT,
	student    TEXT,
	input      TEXT NOT NULL,
	output     TEXT NOT NULL,
	correct    INTEGER NOT NULL DEFAULT 0,
	total      INTEGER NOT NULL DEFAULT 0,
	score      REAL NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS checks (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	attempt_id INTEGER NOT NULL REFERENCES attempts(id),
	problem_id TEXT NOT NULL,
	quantity   TEXT NOT NULL,
	expected   REAL NOT NULL,
	entered    REAL,
	answered   INTEGER NOT NULL DEFAULT 0,
	correct    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_attempts_worksheet ON attempts(worksheet);
CREATE INDEX IF NOT EXISTS idx_checks_attempt ON checks(attempt_id);
`
