package store

import (
	"errors"
	"sort"
	"sync"
)

// MemStore is an in-memory Store for tests and sessions that should not
// touch disk. Create with NewMemStore.
type MemStore struct {
	mu       sync.Mutex
	attempts map[int64]*Attempt
	checks   map[int64][]CheckRow // keyed by attempt id
	nextID   int64
}

// NewMemStore returns a new in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{
		attempts: make(map[int64]*Attempt),
		checks:   make(map[int64][]CheckRow),
	}
}

// SaveAttempt implements Store.
func (s *MemStore) SaveAttempt(a *Attempt, checks []CheckRow) (int64, error) {
	if a == nil {
		return 0, errors.New("attempt is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	cp := *a
	cp.ID = s.nextID
	if cp.CreatedAt == "" {
		cp.CreatedAt = nowUTC()
	}
	s.attempts[cp.ID] = &cp

	rows := make([]CheckRow, len(checks))
	copy(rows, checks)
	for i := range rows {
		rows[i].ID = int64(i + 1)
		rows[i].AttemptID = cp.ID
	}
	s.checks[cp.ID] = rows

	a.ID = cp.ID
	return cp.ID, nil
}

// GetAttempt implements Store.
func (s *MemStore) GetAttempt(id int64) (*Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.attempts[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

// ListAttempts implements Store.
func (s *MemStore) ListAttempts(limit int) ([]*Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Attempt, 0, len(s.attempts))
	for _, v := range s.attempts {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListAttemptsByWorksheet implements Store.
func (s *MemStore) ListAttemptsByWorksheet(name string) ([]*Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Attempt
	for _, v := range s.attempts {
		if v.Worksheet != name {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// ListChecks implements Store.
func (s *MemStore) ListChecks(attemptID int64) ([]CheckRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.checks[attemptID]
	out := make([]CheckRow, len(rows))
	copy(out, rows)
	return out, nil
}

// Close implements Store. It is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }
