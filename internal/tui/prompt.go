package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"lieferplaner/internal/desktop"
	"lieferplaner/internal/logs"
	"lieferplaner/internal/tui/theme"
)

// Prompter shows blocking alerts as a modal inside the running program.
// Prompt blocks the calling goroutine until the user dismisses the modal, so
// it must only be called from commands, never from Update.
type Prompter struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func NewPrompter() *Prompter {
	return &Prompter{}
}

// Attach routes prompts to p.
func (pr *Prompter) Attach(p *tea.Program) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	pr.send = p.Send
}

func (pr *Prompter) Prompt(kind desktop.PromptKind, title, message string) {
	pr.mu.Lock()
	send := pr.send
	pr.mu.Unlock()

	if send == nil {
		logs.Logger.Printf("prompt (no program attached): %s: %s", title, message)
		return
	}
	done := make(chan struct{})
	send(promptMsg{kind: kind, title: title, message: message, done: done})
	<-done
}

// promptModal is the visible part of a pending prompt
type promptModal struct {
	msg   promptMsg
	width int
}

func (m *promptModal) dismiss() {
	if m.msg.done != nil {
		close(m.msg.done)
		m.msg.done = nil
	}
}

func (m *promptModal) View() string {
	box := theme.ModalBox
	if m.msg.kind != desktop.PromptInfo {
		box = theme.ModalWarningBox
	}

	content := theme.ModalTitle.Render(m.msg.title) + "\n\n"
	content += m.msg.message + "\n\n"
	content += theme.ModalHelp.Render("[enter/esc] OK")

	return box.Width(m.width).Render(content)
}
