// Package store persists attempt history: DC solves, AC evaluations, and
// graded worksheets. The CLI writes one Attempt per engine interaction; the
// history command reads them back. Implementations: SQLite (Open) for normal
// use, MemStore for tests and throwaway sessions.
package store

// DefaultDBPath is the default relative path for the SQLite DB.
// Resolve against cwd or $HOME; Open() creates the parent dir (e.g. .wirelab).
const DefaultDBPath = ".wirelab/wirelab.db"

// Attempt kinds.
const (
	KindSolve = "solve" // DC resolve
	KindAC    = "ac"    // AC evaluation
	KindGrade = "grade" // graded worksheet
)

// Attempt is one recorded engine interaction. Input and Output hold the
// request and the result as JSON; Correct, Total, and Score are only set for
// grade attempts.
type Attempt struct {
	ID        int64
	Kind      string
	Worksheet string
	Student   string
	Input     string
	Output    string
	Correct   int
	Total     int
	Score     float64
	CreatedAt string
}

// CheckRow is one graded quantity belonging to a grade attempt. Entered is
// meaningful only when Answered is true.
type CheckRow struct {
	ID        int64
	AttemptID int64
	ProblemID string
	Quantity  string
	Expected  float64
	Entered   float64
	Answered  bool
	Correct   bool
}

// Store is the persistence facade. CLI and tool-server layers use only this
// interface; the implementation is SQLite or in-memory.
type Store interface {
	// SaveAttempt inserts the attempt with its check rows and returns its id.
	SaveAttempt(a *Attempt, checks []CheckRow) (attemptID int64, err error)
	GetAttempt(id int64) (*Attempt, error)
	// ListAttempts returns attempts newest first; limit <= 0 means all.
	ListAttempts(limit int) ([]*Attempt, error)
	ListAttemptsByWorksheet(name string) ([]*Attempt, error)
	ListChecks(attemptID int64) ([]CheckRow, error)
	Close() error
}
