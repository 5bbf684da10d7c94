package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lieferplaner/internal/desktop"
	"lieferplaner/internal/locator"
	"lieferplaner/internal/monitor"
	"lieferplaner/internal/records"
)

// recordsLoadedMsg carries a fresh read of the record store
type recordsLoadedMsg struct {
	records []records.WorkItemRecord
}

// drawingMsg reports a lookup triggered from the list
type drawingMsg struct {
	text   string
	result locator.FindResult
	opened bool
}

// reindexMsg reports a forced catalog rebuild
type reindexMsg struct {
	ok bool
}

// checkpointMsg reports an on-demand monitor pass
type checkpointMsg struct {
	result monitor.Result
}

// promptMsg asks the model to show a blocking alert. done is closed once the
// user dismissed it.
type promptMsg struct {
	kind    desktop.PromptKind
	title   string
	message string
	done    chan struct{}
}

// reloadTickMsg triggers a periodic re-read of the records
type reloadTickMsg time.Time

func loadRecords(src Records) tea.Cmd {
	return func() tea.Msg {
		return recordsLoadedMsg{records: src.Load()}
	}
}

func findAndOpen(loc Locator, text string) tea.Cmd {
	return func() tea.Msg {
		res := loc.FindDrawing(text)
		msg := drawingMsg{text: text, result: res}
		if res.OK {
			msg.opened = loc.OpenDrawing(res.Path)
		}
		return msg
	}
}

func reindex(loc Locator) tea.Cmd {
	return func() tea.Msg {
		return reindexMsg{ok: loc.Reindex(true)}
	}
}

func checkpoint(mon Checkpointer) tea.Cmd {
	return func() tea.Msg {
		return checkpointMsg{result: mon.RunOnce()}
	}
}

func reloadEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return reloadTickMsg(t)
	})
}
