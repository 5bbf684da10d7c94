package catalog

import "github.com/sahilm/fuzzy"

// Suggest ranks catalog file names against key with a fuzzy subsequence match.
// It is meant for "did you mean" output after Resolve found nothing and is
// never used to pick a drawing.
func Suggest(key string, c *Catalog, limit int) []Entry {
	if key == "" || c == nil || len(c.Files) == 0 || limit <= 0 {
		return nil
	}

	names := make([]string, len(c.Files))
	for i, e := range c.Files {
		names[i] = e.Name
	}

	matches := fuzzy.Find(key, names)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Entry, len(matches))
	for i, m := range matches {
		out[i] = c.Files[m.Index]
	}
	return out
}
