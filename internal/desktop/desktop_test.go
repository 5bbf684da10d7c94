package desktop

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

func recorder(calls *[]call, err error) Runner {
	return func(name string, args ...string) error {
		*calls = append(*calls, call{name: name, args: args})
		return err
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TM1.stp")
	os.WriteFile(path, []byte("x"), 0644)

	var calls []call
	o := NewOpenerWith(recorder(&calls, nil), "linux")

	if !o.OpenFile(path) {
		t.Fatal("expected open to succeed")
	}
	if len(calls) != 1 || calls[0].name != "xdg-open" || calls[0].args[0] != path {
		t.Errorf("unexpected launcher calls %+v", calls)
	}

	if o.OpenFile("") {
		t.Error("empty path must not open")
	}
	if o.OpenFile(filepath.Join(t.TempDir(), "missing.stp")) {
		t.Error("missing file must not open")
	}
	if len(calls) != 1 {
		t.Errorf("launcher should not run for rejected paths, got %d calls", len(calls))
	}
}

func TestOpenFile_PlatformLaunchers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.step")
	os.WriteFile(path, []byte("x"), 0644)

	for goos, want := range map[string]string{"windows": "rundll32", "darwin": "open"} {
		var calls []call
		if !NewOpenerWith(recorder(&calls, nil), goos).OpenFile(path) {
			t.Errorf("%s: expected open to succeed", goos)
			continue
		}
		if calls[0].name != want {
			t.Errorf("%s: expected %s, got %s", goos, want, calls[0].name)
		}
	}

	if NewOpenerWith(recorder(new([]call), nil), "plan9").OpenFile(path) {
		t.Error("unknown platform should report failure")
	}
	if NewOpenerWith(recorder(new([]call), errors.New("no launcher")), "linux").OpenFile(path) {
		t.Error("launcher failure should report false")
	}
}

func TestConsolePrompter(t *testing.T) {
	var buf bytes.Buffer
	p := &ConsolePrompter{W: &buf}
	p.Prompt(PromptWarning, "Drawing drive unavailable", "Please connect Z:")

	out := buf.String()
	if !strings.Contains(out, "[WARNING] Drawing drive unavailable") || !strings.Contains(out, "Please connect Z:") {
		t.Errorf("unexpected prompt output %q", out)
	}
}

func TestToaster(t *testing.T) {
	var calls []call
	if err := NewToasterWith(recorder(&calls, nil), "linux").Notify("Title", "Body"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls[0].name != "notify-send" || calls[0].args[1] != "Title" {
		t.Errorf("unexpected call %+v", calls[0])
	}

	calls = nil
	NewToasterWith(recorder(&calls, nil), "windows").Notify("It's due", "x")
	script := calls[0].args[len(calls[0].args)-1]
	if !strings.Contains(script, "'It''s due'") {
		t.Errorf("expected quoted title in script, got %q", script)
	}

	if err := NewToasterWith(recorder(&calls, nil), "plan9").Notify("t", "b"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
