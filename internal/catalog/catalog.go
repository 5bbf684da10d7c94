package catalog

import (
	"path/filepath"
	"strings"
	"time"
)

// Entry is one drawing file with its precomputed match keys.
type Entry struct {
	Name            string `json:"name"`
	Path            string `json:"path"`
	NameLower       string `json:"nameLower"`
	PathLower       string `json:"pathLower"`
	AlphaNumericKey string `json:"alpha"`
}

// Catalog is the flat list of drawings found below Root. It is rebuilt as a
// whole and never patched.
type Catalog struct {
	Root      string    `json:"root"`
	CreatedAt time.Time `json:"createdAt"`
	Files     []Entry   `json:"files"`
}

// NewEntry derives the match keys for path.
func NewEntry(path string) Entry {
	name := filepath.Base(path)
	return Entry{
		Name:            name,
		Path:            path,
		NameLower:       strings.ToLower(name),
		PathLower:       strings.ToLower(path),
		AlphaNumericKey: NormalizeAlphaNum(name),
	}
}

// New builds a catalog for root from the given file paths.
func New(root string, paths []string, createdAt time.Time) *Catalog {
	files := make([]Entry, 0, len(paths))
	for _, p := range paths {
		files = append(files, NewEntry(p))
	}
	return &Catalog{Root: root, CreatedAt: createdAt, Files: files}
}

// ValidFor reports whether the catalog was built for root. Roots compare
// case-insensitively and nothing else; a mapped drive and the share it maps
// are different roots.
func (c *Catalog) ValidFor(root string) bool {
	if c == nil || c.Root == "" || root == "" {
		return false
	}
	return strings.EqualFold(c.Root, root)
}

// NormalizeAlphaNum lower-cases s and keeps only ASCII letters and digits.
func NormalizeAlphaNum(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
