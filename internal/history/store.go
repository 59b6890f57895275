package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/suteru-cli/suteru/internal/fs"
)

const currentVersion = 1

// historyLog is the on-disk document. The whole log is rewritten on every
// mutation; a temp-file-then-rename promote keeps the canonical file intact
// when a write is interrupted.
type historyLog struct {
	Version int     `json:"version"`
	Batches []Batch `json:"batches"`
}

// Store owns the history file. All mutations go through it.
type Store struct {
	path string
	mu   sync.RWMutex
	log  historyLog
}

// NewStore opens the history file at path. A missing file is not an error:
// the store starts with an empty log. Leftover temp files from interrupted
// runs are swept away.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path: path,
		log:  historyLog{Version: currentVersion},
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	s.sweepTemps()

	return s, nil
}

// Path returns the location of the history file.
func (s *Store) Path() string {
	return s.path
}

// Append records a batch at the end of the log and persists it.
func (s *Store) Append(batch Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Batches = append(s.log.Batches, batch)
	if err := s.save(); err != nil {
		// Keep the in-memory log consistent with disk
		s.log.Batches = s.log.Batches[:len(s.log.Batches)-1]
		return err
	}
	return nil
}

// PopLast removes the most recent batch from the log, persists the shrunken
// log, and returns the batch. An empty log returns (nil, nil).
func (s *Store) PopLast() (*Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.log.Batches)
	if n == 0 {
		return nil, nil
	}

	batch := s.log.Batches[n-1]
	s.log.Batches = s.log.Batches[:n-1]
	if err := s.save(); err != nil {
		s.log.Batches = append(s.log.Batches, batch)
		return nil, err
	}
	return &batch, nil
}

// Last returns a copy of the most recent batch without mutating the log,
// or nil when the log is empty.
func (s *Store) Last() *Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.log.Batches)
	if n == 0 {
		return nil
	}
	batch := s.log.Batches[n-1]
	batch.Items = append([]Item(nil), batch.Items...)
	return &batch
}

// List returns a copy of all batches, oldest first.
func (s *Store) List() []Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batches := make([]Batch, len(s.log.Batches))
	copy(batches, s.log.Batches)
	for i := range batches {
		batches[i].Items = append([]Item(nil), batches[i].Items...)
	}
	return batches
}

// RemoveItems drops the given items from whichever batches hold them,
// matching by holding-area path. Batches left empty disappear from the log.
func (s *Store) RemoveItems(items []Item) error {
	if len(items) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]struct{}, len(items))
	for _, item := range items {
		drop[item.To] = struct{}{}
	}

	old := s.log.Batches
	var batches []Batch
	for _, batch := range s.log.Batches {
		var kept []Item
		for _, item := range batch.Items {
			if _, ok := drop[item.To]; !ok {
				kept = append(kept, item)
			}
		}
		if len(kept) > 0 {
			batch.Items = kept
			batches = append(batches, batch)
		}
	}

	s.log.Batches = batches
	if err := s.save(); err != nil {
		s.log.Batches = old
		return err
	}
	return nil
}

func (s *Store) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// No history yet, start empty
			return nil
		}
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&s.log); err != nil {
		return fmt.Errorf("decode history file %s: %w", s.path, err)
	}
	if s.log.Version > currentVersion {
		return fmt.Errorf("history file %s has unsupported version %d", s.path, s.log.Version)
	}
	return nil
}

// save rewrites the whole log to a temporary file in the same directory,
// syncs it, and renames it over the canonical path.
func (s *Store) save() error {
	s.log.Version = currentVersion

	tmpPath := filepath.Join(filepath.Dir(s.path), tempName())
	tmp, err := fs.CreateExclusive(tmpPath, 0600)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.log); err != nil {
		cleanup()
		return fmt.Errorf("failed to encode history: %w", err)
	}

	// Ensure data is written to disk
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync history file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	// Rename temporary file to actual history file
	if err := os.Rename(tmpPath, s.path); err != nil {
		cleanup()
		return fmt.Errorf("failed to save history file: %w", err)
	}

	return nil
}

// sweepTemps removes temp files left behind by interrupted saves.
func (s *Store) sweepTemps() {
	entries, err := os.ReadDir(filepath.Dir(s.path))
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, tempPrefix) && strings.HasSuffix(name, tempSuffix) {
			stale := filepath.Join(filepath.Dir(s.path), name)
			if err := os.Remove(stale); err != nil {
				slog.Warn("failed to remove stale history temp file", "path", stale, "error", err)
			}
		}
	}
}

const (
	tempPrefix = ".history-"
	tempSuffix = ".json.tmp"
)

func tempName() string {
	return tempPrefix + uuid.New().String() + tempSuffix
}
