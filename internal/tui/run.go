package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"lieferplaner/internal/logs"
)

// Background runs alongside the program until its context is cancelled.
type Background func(ctx context.Context)

// Run starts the TUI, attaches the prompter and runs bg until the program exits.
func Run(ctx context.Context, deps Deps, prompter *Prompter, bg Background) error {
	logs.Logger.Println("Starting app in TUI mode")

	p := tea.NewProgram(NewAppModel(deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if prompter != nil {
		prompter.Attach(p)
	}

	bgCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	if bg != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bg(bgCtx)
		}()
	}

	_, err := p.Run()
	cancel()
	wg.Wait()
	return err
}
