package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// nullFloat converts a sql.NullFloat64 to a plain float64 (0 if null).
func nullFloat(nf sql.NullFloat64) float64 {
	if nf.Valid {
		return nf.Float64
	}
	return 0
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .wirelab) if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	// Check if schema_version table exists to detect database state.
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableCount == 0 {
		// Fresh database.
		return s.freshInstall()
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		// schema_version exists but is empty; stamp the current version.
		v = currentSchemaVersion
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", v); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
	}

	switch v {
	case currentSchemaVersion:
		return nil
	default:
		return fmt.Errorf("unknown schema version %d", v)
	}
}

// freshInstall creates the current schema from scratch on an empty database.
func (s *SqlStore) freshInstall() error {
	if _, err := s.db.Exec(schema1); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", currentSchemaVersion); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

// SaveAttempt inserts the attempt and its check rows in one transaction.
func (s *SqlStore) SaveAttempt(a *Attempt, checks []CheckRow) (int64, error) {
	if a == nil {
		return 0, errors.New("attempt is nil")
	}
	if a.CreatedAt == "" {
		a.CreatedAt = nowUTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		`INSERT INTO attempts(kind, worksheet, student, input, output, correct, total, score, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Kind, a.Worksheet, a.Student, a.Input, a.Output, a.Correct, a.Total, a.Score, a.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	for _, c := range checks {
		var entered any
		if c.Answered {
			entered = c.Entered
		}
		if _, err := tx.Exec(
			`INSERT INTO checks(attempt_id, problem_id, quantity, expected, entered, answered, correct)
			 VALUES(?, ?, ?, ?, ?, ?, ?)`,
			id, c.ProblemID, c.Quantity, c.Expected, entered, boolInt(c.Answered), boolInt(c.Correct),
		); err != nil {
			return 0, fmt.Errorf("insert check: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	a.ID = id
	return id, nil
}

// GetAttempt returns the attempt by id, or nil if not found.
func (s *SqlStore) GetAttempt(id int64) (*Attempt, error) {
	var a Attempt
	err := s.db.QueryRow(
		`SELECT id, kind, worksheet, student, input, output, correct, total, score, created_at
		 FROM attempts WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.Kind, &a.Worksheet, &a.Student, &a.Input, &a.Output,
		&a.Correct, &a.Total, &a.Score, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	return &a, nil
}

// ListAttempts returns attempts newest first. limit <= 0 returns all rows
// (a negative LIMIT is unbounded in SQLite).
func (s *SqlStore) ListAttempts(limit int) ([]*Attempt, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, kind, worksheet, student, input, output, correct, total, score, created_at
		 FROM attempts ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return scanAttempts(rows)
}

// ListAttemptsByWorksheet returns the worksheet's attempts newest first.
func (s *SqlStore) ListAttemptsByWorksheet(name string) ([]*Attempt, error) {
	rows, err := s.db.Query(
		`SELECT id, kind, worksheet, student, input, output, correct, total, score, created_at
		 FROM attempts WHERE worksheet = ? ORDER BY id DESC`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts by worksheet: %w", err)
	}
	return scanAttempts(rows)
}

func scanAttempts(rows *sql.Rows) ([]*Attempt, error) {
	defer rows.Close()
	var list []*Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.Kind, &a.Worksheet, &a.Student, &a.Input, &a.Output,
			&a.Correct, &a.Total, &a.Score, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		list = append(list, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return list, nil
}

// ListChecks returns the check rows of an attempt in insertion order.
func (s *SqlStore) ListChecks(attemptID int64) ([]CheckRow, error) {
	rows, err := s.db.Query(
		`SELECT id, attempt_id, problem_id, quantity, expected, entered, answered, correct
		 FROM checks WHERE attempt_id = ? ORDER BY id`,
		attemptID,
	)
	if err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}
	defer rows.Close()
	var list []CheckRow
	for rows.Next() {
		var c CheckRow
		var entered sql.NullFloat64
		var answered, correct int
		if err := rows.Scan(&c.ID, &c.AttemptID, &c.ProblemID, &c.Quantity,
			&c.Expected, &entered, &answered, &correct); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		c.Entered = nullFloat(entered)
		c.Answered = answered == 1
		c.Correct = correct == 1
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}
	return list, nil
}
