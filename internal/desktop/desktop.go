package desktop

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"lieferplaner/internal/logs"
)

// ErrUnsupported is returned where the platform has no known launcher.
var ErrUnsupported = errors.New("not supported on this platform")

// Runner starts an external command without waiting for it.
type Runner func(name string, args ...string) error

func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Opener launches files in their associated application.
type Opener struct {
	run  Runner
	goos string
}

func NewOpener() *Opener {
	return &Opener{run: startDetached, goos: runtime.GOOS}
}

// NewOpenerWith is NewOpener with an injected runner and platform.
func NewOpenerWith(run Runner, goos string) *Opener {
	return &Opener{run: run, goos: goos}
}

// OpenFile opens path with the default application. It reports false when the
// path is empty, missing, or the launcher could not be started.
func (o *Opener) OpenFile(path string) bool {
	if path == "" {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		logs.Logger.Printf("desktop: cannot open %s: %v", path, err)
		return false
	}

	var err error
	switch o.goos {
	case "windows":
		err = o.run("rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		err = o.run("open", path)
	case "linux", "freebsd", "openbsd", "netbsd":
		err = o.run("xdg-open", path)
	default:
		err = ErrUnsupported
	}
	if err != nil {
		logs.Logger.Printf("desktop: launching %s failed: %v", path, err)
		return false
	}
	return true
}

// PromptKind mirrors the severity of a message box.
type PromptKind string

const (
	PromptInfo    PromptKind = "info"
	PromptWarning PromptKind = "warning"
	PromptError   PromptKind = "error"
)

// Prompter shows a message and returns once the user has seen it.
type Prompter interface {
	Prompt(kind PromptKind, title, message string)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(kind PromptKind, title, message string)

func (f PrompterFunc) Prompt(kind PromptKind, title, message string) {
	f(kind, title, message)
}

// ConsolePrompter writes prompts to a terminal stream.
type ConsolePrompter struct {
	W  io.Writer
	mu sync.Mutex
}

func (p *ConsolePrompter) Prompt(kind PromptKind, title, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.W, "[%s] %s\n%s\n", strings.ToUpper(string(kind)), title, message)
}

// Toaster shows desktop notifications through the platform's notification tool.
type Toaster struct {
	run  Runner
	goos string
}

func NewToaster() *Toaster {
	return &Toaster{run: startDetached, goos: runtime.GOOS}
}

// NewToasterWith is NewToaster with an injected runner and platform.
func NewToasterWith(run Runner, goos string) *Toaster {
	return &Toaster{run: run, goos: goos}
}

func (t *Toaster) Notify(title, body string) error {
	switch t.goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return t.run("notify-send", "--app-name=lieferplaner", title, body)
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", appleQuote(body), appleQuote(title))
		return t.run("osascript", "-e", script)
	case "windows":
		return t.run("powershell", "-NoProfile", "-WindowStyle", "Hidden", "-Command", balloonScript(title, body))
	default:
		return ErrUnsupported
	}
}

func appleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func balloonScript(title, body string) string {
	return strings.Join([]string{
		"Add-Type -AssemblyName System.Windows.Forms",
		"$n = New-Object System.Windows.Forms.NotifyIcon",
		"$n.Icon = [System.Drawing.SystemIcons]::Information",
		"$n.BalloonTipTitle = " + psQuote(title),
		"$n.BalloonTipText = " + psQuote(body),
		"$n.Visible = $true",
		"$n.ShowBalloonTip(10000)",
		"Start-Sleep -Seconds 10",
		"$n.Dispose()",
	}, "; ")
}
