package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/fortify/retry"

	"lieferplaner/internal/logs"
)

// Condition tags used in state keys.
const (
	ConditionOverdue = "overdue"
	ConditionDueSoon = "dueSoon"
)

// DateLayout is the calendar date stored per state entry.
const DateLayout = "2006-01-02"

// State maps "<itemKey>::<condition>" to the date that condition last fired.
type State map[string]string

// Key builds the state key for an item and condition.
func Key(itemKey, condition string) string {
	return itemKey + "::" + condition
}

// Clone returns an independent copy.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// FiredOn reports whether key already fired on day.
func (s State) FiredOn(key string, day time.Time) bool {
	return s[key] == day.Format(DateLayout)
}

// StateStore persists State as a flat JSON object.
type StateStore struct {
	path        string
	retryConfig retry.Config
}

func NewStateStore(path string) *StateStore {
	return &StateStore{
		path: path,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Load never fails; an absent or undecodable document is an empty State.
func (s *StateStore) Load() State {
	retryer := retry.New[[]byte](s.retryConfig)
	raw, err := retryer.Do(context.Background(), func(ctx context.Context) ([]byte, error) {
		data, err := os.ReadFile(s.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return data, err
	})
	if err != nil {
		logs.Logger.Printf("notify: could not read state %s: %v", s.path, err)
		return State{}
	}
	if len(raw) == 0 {
		return State{}
	}

	// Values that are not strings are dropped individually.
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		logs.Logger.Printf("notify: ignoring malformed state %s: %v", s.path, err)
		return State{}
	}
	st := make(State, len(generic))
	for k, v := range generic {
		if str, ok := v.(string); ok {
			st[k] = str
		}
	}
	return st
}

// Save writes the whole state, replacing the previous document.
func (s *StateStore) Save(st State) error {
	if st == nil {
		st = State{}
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", s.path, err)
	}
	return nil
}
