package catalog

import (
	"sync"
)

// Store holds the entries of the current session. Entries are replaced
// wholesale on every load and never edited in place.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	report  LoadReport

	loadedOnce sync.Once
	loaded     chan struct{}
}

func NewStore() *Store {
	return &Store{loaded: make(chan struct{})}
}

// Replace swaps the entry list and the load report.
func (s *Store) Replace(entries []Entry, report LoadReport) {
	owned := make([]Entry, len(entries))
	copy(owned, entries)
	report.Entries = len(owned)

	s.mu.Lock()
	s.entries = owned
	s.report = report
	s.mu.Unlock()
}

// Entries returns the current entries. The slice is shared and must not be
// modified by callers.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

func (s *Store) Report() LoadReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// MarkLoaded signals that loading finished. Safe to call more than once.
func (s *Store) MarkLoaded() {
	s.loadedOnce.Do(func() { close(s.loaded) })
}

// Loaded is closed once the first load has finished, whatever its outcome.
func (s *Store) Loaded() <-chan struct{} {
	return s.loaded
}

func (s *Store) IsLoaded() bool {
	select {
	case <-s.loaded:
		return true
	default:
		return false
	}
}
