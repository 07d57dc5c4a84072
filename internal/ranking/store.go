package ranking

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoTable is returned when the backing document does not exist yet.
// A table is created implicitly by the first write.
var ErrNoTable = errors.New("ranking: no table document")

// Store persists a Table as one JSON document. Every read-modify-write
// cycle holds the store lock, so two in-flight updates against the same
// document can never interleave.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the full document.
func (s *Store) Load() (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save atomically replaces the full document.
func (s *Store) Save(t Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(t)
}

// Update loads the document, applies fn, and writes the result back
// when fn reports a change. A missing document is passed to fn as a nil
// table; fn may allocate and return a fresh one. When fn returns false
// the document is left byte-for-byte untouched, which is what makes
// dry runs safe.
func (s *Store) Update(fn func(Table) (Table, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load()
	if err != nil {
		if !errors.Is(err, ErrNoTable) {
			return err
		}
		t = nil
	}

	t, save, err := fn(t)
	if err != nil {
		return err
	}
	if !save {
		return nil
	}
	return s.save(t)
}

func (s *Store) load() (Table, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoTable
		}
		return nil, fmt.Errorf("reading ranking document: %w", err)
	}

	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing ranking document: %w", err)
	}
	return t, nil
}

func (s *Store) save(t Table) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling ranking document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Write to a temp file and rename so concurrent readers never see
	// a half-written document.
	tmp, err := os.CreateTemp(dir, ".schika-*")
	if err != nil {
		return fmt.Errorf("creating temp document: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing ranking document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing ranking document: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing ranking document: %w", err)
	}
	return nil
}
