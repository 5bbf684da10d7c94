package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/xeipuuv/gojsonschema"

	"lieferplaner/internal/logs"
)

// ErrNoCatalog is returned by Store.Read when there is no usable catalog on disk.
var ErrNoCatalog = errors.New("no usable drawing catalog")

const catalogSchemaJSON = `{
  "type": "object",
  "required": ["root", "files"],
  "properties": {
    "root": { "type": "string", "minLength": 1 },
    "createdAt": { "type": "string" },
    "files": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "path"],
        "properties": {
          "name": { "type": "string" },
          "path": { "type": "string" },
          "nameLower": { "type": "string" },
          "pathLower": { "type": "string" },
          "alpha": { "type": "string" }
        }
      }
    }
  }
}`

var catalogSchemaLoader = gojsonschema.NewStringLoader(catalogSchemaJSON)

// Store persists one catalog document.
type Store struct {
	path        string
	retryConfig retry.Config
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

// Path returns the location of the catalog document.
func (s *Store) Path() string {
	return s.path
}

// Read returns the persisted catalog or ErrNoCatalog when it is missing or of
// unexpected shape.
func (s *Store) Read() (*Catalog, error) {
	retryer := retry.New[[]byte](s.retryConfig)
	raw, err := retryer.Do(context.Background(), func(ctx context.Context) ([]byte, error) {
		data, err := os.ReadFile(s.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return data, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrNoCatalog, s.path, err)
	}
	if len(raw) == 0 {
		return nil, ErrNoCatalog
	}

	result, err := gojsonschema.Validate(catalogSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCatalog, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %d schema violations, first: %s", ErrNoCatalog, len(result.Errors()), result.Errors()[0])
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCatalog, err)
	}
	c.fillKeys()
	return &c, nil
}

// Load is Read with the failure logged and turned into nil.
func (s *Store) Load() *Catalog {
	c, err := s.Read()
	if err != nil {
		// a plain missing file is the normal first-run case
		if err != ErrNoCatalog {
			logs.Logger.Printf("catalog: %v", err)
		}
		return nil
	}
	return c
}

// Save writes c, replacing any previous catalog.
func (s *Store) Save(c *Catalog) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", s.path, err)
	}
	return nil
}

// Stamp identifies one version of the persisted document.
type Stamp struct {
	ModTime time.Time
	Size    int64
}

// Stamp reports the version of the persisted document, false when there is none.
func (s *Store) Stamp() (Stamp, bool) {
	info, err := os.Stat(s.path)
	if err != nil || info.IsDir() {
		return Stamp{}, false
	}
	return Stamp{ModTime: info.ModTime(), Size: info.Size()}, true
}

// Delete removes the persisted catalog. A missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", s.path, err)
	}
	return nil
}

// fillKeys recomputes match keys an older or hand-edited document lacks.
func (c *Catalog) fillKeys() {
	for i, e := range c.Files {
		if e.NameLower == "" || e.PathLower == "" || e.AlphaNumericKey == "" {
			fresh := NewEntry(e.Path)
			fresh.Name = e.Name
			fresh.NameLower = strings.ToLower(e.Name)
			fresh.AlphaNumericKey = NormalizeAlphaNum(e.Name)
			c.Files[i] = fresh
		}
	}
}
