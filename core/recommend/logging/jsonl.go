package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// JSONLStore appends records as JSON lines to a file. When maxSizeBytes is
// positive the file is rotated once it grows past the limit, keeping a single
// ".1" backup.
type JSONLStore struct {
	mu           sync.Mutex
	path         string
	f            *os.File
	maxSizeBytes int64
}

// NewJSONLStore opens (or creates) the store at path. maxSizeMB of zero
// disables rotation.
func NewJSONLStore(path string, maxSizeMB int) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &JSONLStore{path: path, f: f, maxSizeBytes: int64(maxSizeMB) * 1024 * 1024}, nil
}

// Append writes the record as one JSON line.
func (s *JSONLStore) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rotateIfNeeded(int64(len(data))); err != nil {
		return err
	}
	_, err = s.f.Write(data)
	return err
}

// rotateIfNeeded swaps the file for a fresh one when the next write would
// exceed the size limit. Caller holds the lock.
func (s *JSONLStore) rotateIfNeeded(next int64) error {
	if s.maxSizeBytes <= 0 {
		return nil
	}
	info, err := s.f.Stat()
	if err != nil {
		return err
	}
	if info.Size()+next <= s.maxSizeBytes {
		return nil
	}
	if err := s.f.Close(); err != nil {
		return err
	}
	if err := os.Rename(s.path, s.path+".1"); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	s.f = f
	return nil
}

// Close flushes and closes the underlying file.
func (s *JSONLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
