package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"lieferplaner/internal/logs"
)

// DrawingExtensions are the lower-cased extensions collected by a default Scanner.
var DrawingExtensions = []string{".step", ".stp"}

// DirLister lists the immediate entries of a directory.
type DirLister func(dir string) ([]fs.DirEntry, error)

// Scanner walks a directory tree and collects files by extension.
type Scanner struct {
	list DirLister
	exts map[string]bool
}

// New returns a Scanner over the real filesystem collecting DrawingExtensions.
func New() *Scanner {
	return NewWithLister(os.ReadDir)
}

// NewWithLister returns a Scanner that lists directories through list.
func NewWithLister(list DirLister, exts ...string) *Scanner {
	if len(exts) == 0 {
		exts = DrawingExtensions
	}
	s := &Scanner{list: list, exts: make(map[string]bool, len(exts))}
	for _, e := range exts {
		s.exts[strings.ToLower(e)] = true
	}
	return s
}

// Scan walks root depth-first with an explicit stack. A directory that cannot be
// listed is skipped together with its subtree; the walk never aborts.
// The order of the result follows stack order and carries no meaning.
func (s *Scanner) Scan(root string) []string {
	var files []string
	stack := []string{root}
	skipped := 0

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := s.list(dir)
		if err != nil {
			skipped++
			logs.Logger.Printf("scanner: skipping %s: %v", dir, err)
			continue
		}

		for _, entry := range entries {
			absPath := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				stack = append(stack, absPath)
				continue
			}
			if s.exts[strings.ToLower(filepath.Ext(entry.Name()))] {
				files = append(files, absPath)
			}
		}
	}

	logs.Logger.Printf("scanner: %s: %d files, %d directories skipped", root, len(files), skipped)
	return files
}
