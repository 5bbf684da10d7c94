package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/felixgeelhaar/fortify/retry"

	"lieferplaner/internal/logs"
)

// Store reads and writes the records document. Reads never fail: a missing or
// malformed document is an empty list.
type Store struct {
	path        string
	retryConfig retry.Config
	mu          sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Path returns the location of the records document.
func (s *Store) Path() string {
	return s.path
}

// Load returns all records. Elements that do not decode as a record are skipped.
func (s *Store) Load() []WorkItemRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	retryer := retry.New[[]byte](s.retryConfig)
	raw, err := retryer.Do(context.Background(), func(ctx context.Context) ([]byte, error) {
		data, err := os.ReadFile(s.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return data, err
	})
	if err != nil {
		logs.Logger.Printf("records: could not read %s: %v", s.path, err)
		return []WorkItemRecord{}
	}
	if len(raw) == 0 {
		return []WorkItemRecord{}
	}

	recs, err := Decode(raw)
	if err != nil {
		logs.Logger.Printf("records: ignoring malformed %s: %v", s.path, err)
		return []WorkItemRecord{}
	}
	return recs
}

// Decode parses a JSON array of records, skipping elements of unexpected shape.
// It fails only when the document is not an array.
func Decode(raw []byte) ([]WorkItemRecord, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	recs := make([]WorkItemRecord, 0, len(elems))
	for i, el := range elems {
		var r WorkItemRecord
		if err := json.Unmarshal(el, &r); err != nil {
			logs.Logger.Printf("records: skipping element %d: %v", i, err)
			continue
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// Save replaces the document with recs.
func (s *Store) Save(recs []WorkItemRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if recs == nil {
		recs = []WorkItemRecord{}
	}

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", s.path, err)
	}
	return nil
}
