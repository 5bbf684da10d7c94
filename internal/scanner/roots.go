package scanner

import "os"

// AccessFunc reports whether a path can currently be read.
type AccessFunc func(path string) error

// StatAccess is the default AccessFunc.
func StatAccess(path string) error {
	_, err := os.Stat(path)
	return err
}

// ResolveRoot returns the first accessible candidate in priority order, or ""
// when none is reachable. Callers probe again on every lookup; a root that was
// reachable a minute ago may not be now.
func ResolveRoot(candidates []string, access AccessFunc) string {
	if access == nil {
		access = StatAccess
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if err := access(c); err == nil {
			return c
		}
	}
	return ""
}
