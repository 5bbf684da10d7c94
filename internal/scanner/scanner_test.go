package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("ISO-10303-21;"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	sort.Strings(names)
	return names
}

func TestScan_FindsStepFilesAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"top.STEP",
		"a/part.stp",
		"a/b/c/deep.Stp",
		"a/readme.txt",
		"x/drawing.pdf",
		"x/.hidden/inside.step",
	)

	got := baseNames(New().Scan(root))
	want := []string{"deep.Stp", "inside.step", "part.stp", "top.STEP"}

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestScan_PathsAreJoinedOnRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "TM000195055/model.stp")

	files := New().Scan(root)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	want := filepath.Join(root, "TM000195055", "model.stp")
	if files[0] != want {
		t.Errorf("expected %q, got %q", want, files[0])
	}
}

func TestScan_SkipsUnlistableSubtree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"ok/one.stp",
		"ok/nested/two.step",
		"locked/three.stp",
		"locked/below/four.stp",
		"five.stp",
	)

	locked := filepath.Join(root, "locked")
	lister := func(dir string) ([]fs.DirEntry, error) {
		if dir == locked {
			return nil, fs.ErrPermission
		}
		return os.ReadDir(dir)
	}

	got := baseNames(NewWithLister(lister).Scan(root))
	want := []string{"five.stp", "one.stp", "two.step"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestScan_UnlistableRoot(t *testing.T) {
	files := NewWithLister(func(string) ([]fs.DirEntry, error) {
		return nil, errors.New("network path not found")
	}).Scan(`\\HOST\Zeichnungen`)
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestScan_CustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.igs", "b.stp")

	files := NewWithLister(os.ReadDir, ".IGS").Scan(root)
	if len(files) != 1 || filepath.Base(files[0]) != "a.igs" {
		t.Errorf("expected only a.igs, got %v", files)
	}
}

func TestResolveRoot_PriorityOrder(t *testing.T) {
	reachable := map[string]bool{`\\HOST\Zeichnungen`: true, `Y:\Backup`: true}
	access := func(p string) error {
		if reachable[p] {
			return nil
		}
		return fs.ErrNotExist
	}

	got := ResolveRoot([]string{`Z:\Zeichnungen`, `\\HOST\Zeichnungen`, `Y:\Backup`}, access)
	if got != `\\HOST\Zeichnungen` {
		t.Errorf("expected fallback share, got %q", got)
	}

	reachable[`Z:\Zeichnungen`] = true
	got = ResolveRoot([]string{`Z:\Zeichnungen`, `\\HOST\Zeichnungen`}, access)
	if got != `Z:\Zeichnungen` {
		t.Errorf("expected mapped drive to win, got %q", got)
	}
}

func TestResolveRoot_Unavailable(t *testing.T) {
	got := ResolveRoot([]string{filepath.Join(t.TempDir(), "missing"), ""}, nil)
	if got != "" {
		t.Errorf("expected no root, got %q", got)
	}

	dir := t.TempDir()
	if got := ResolveRoot([]string{dir}, nil); got != dir {
		t.Errorf("expected %q, got %q", dir, got)
	}
}
