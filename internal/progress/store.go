// Package progress persists per-key enrichment outcomes so an interrupted
// run can resume without repeating lookups.
package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"deckbuilder/internal/collection"
)

// Status is the terminal outcome recorded for a lookup key.
type Status string

const (
	// StatusResolved means attributes were fetched and stored. Never
	// reprocessed on resume.
	StatusResolved Status = "RESOLVED"
	// StatusNotFound means the reference source definitively has no such
	// card. Never reprocessed on resume.
	StatusNotFound Status = "NOT_FOUND"
	// StatusFailed means retries were exhausted or the response was
	// unusable. Eligible for retry on a later run.
	StatusFailed Status = "FAILED"
)

// Entry is the persisted outcome for one lookup key.
type Entry struct {
	Status     Status                 `json:"status"`
	Attributes *collection.Attributes `json:"attributes,omitempty"`
	Reason     string                 `json:"reason,omitempty"`
	UpdatedAt  time.Time              `json:"timestamp"`
}

// Store is a flat key-addressed checkpoint file. Every Record call rewrites
// the whole document atomically (tmp + rename) and syncs it before
// returning, so a crash immediately after never loses the entry just
// written. All access happens from the single orchestrating goroutine.
type Store struct {
	path    string
	entries map[string]Entry
}

// Open loads the store at path. A missing or empty file yields an empty
// store; a file that exists but cannot be parsed is an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path, entries: make(map[string]Entry)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress file: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("parse progress file %s: %w", path, err)
	}
	return s, nil
}

// Fresh returns an empty store at path, ignoring any existing content. The
// first Record call overwrites the old file.
func Fresh(path string) *Store {
	return &Store{path: path, entries: make(map[string]Entry)}
}

// Get returns the recorded entry for key, if any.
func (s *Store) Get(key string) (Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Len reports the number of recorded keys.
func (s *Store) Len() int {
	return len(s.entries)
}

// Record stores the entry for key and flushes the document to disk before
// returning. Overwriting an earlier entry for the same key is allowed; the
// orchestrator only does that when retrying a previously failed key.
func (s *Store) Record(key string, e Entry) error {
	s.entries[key] = e
	return s.save()
}

// Remove deletes the checkpoint file. Only invoked when the user explicitly
// asks for cleanup after a run with no failed keys; by default the file is
// kept so a resumed run stays idempotent.
func (s *Store) Remove() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create progress directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write progress temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write progress temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync progress temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close progress temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename progress file: %w", err)
	}
	return nil
}
