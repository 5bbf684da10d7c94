package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lieferplaner/internal/desktop"
	"lieferplaner/internal/locator"
	"lieferplaner/internal/monitor"
	"lieferplaner/internal/records"
)

type staticRecords []records.WorkItemRecord

func (s staticRecords) Load() []records.WorkItemRecord { return s }

type fakeLocator struct {
	result   locator.FindResult
	opened   []string
	queries  []string
	reindex  int
	openFail bool
}

func (f *fakeLocator) FindDrawing(text string) locator.FindResult {
	f.queries = append(f.queries, text)
	return f.result
}

func (f *fakeLocator) OpenDrawing(path string) bool {
	f.opened = append(f.opened, path)
	return !f.openFail
}

func (f *fakeLocator) Reindex(force bool) bool {
	f.reindex++
	return true
}

type fakeMonitor struct{ runs int }

func (f *fakeMonitor) RunOnce() monitor.Result {
	f.runs++
	return monitor.Result{Overdue: make([]records.WorkItemRecord, 2)}
}

func makeRecords() staticRecords {
	return staticRecords{
		{WorkOrderRef: "BA-1", DocumentRef: "AB100", ArticleRef: "4711", PositionText: "Pos TM000195055 Flansch", OpenStatusCode: "605", DueDate: "05.06.2024"},
		{WorkOrderRef: "BA-2", DocumentRef: "AB200", ArticleRef: "0815", PositionText: "Welle 1234567", OpenStatusCode: "640", DueDate: "12.06.2024"},
		{WorkOrderRef: "BA-3", DocumentRef: "AB300", ArticleRef: "1000", PositionText: "Deckel", OpenStatusCode: "610", DueDate: "20.06.2024", Done: true},
		{WorkOrderRef: "BA-4", DocumentRef: "AB400", ArticleRef: "2000", PositionText: "Gehäuse TM12345", OpenStatusCode: "699", DueDate: "14.06.2024"},
	}
}

func newTestModel(loc *fakeLocator, mon *fakeMonitor) AppModel {
	m := NewAppModel(Deps{
		Records: makeRecords(),
		Locator: loc,
		Monitor: mon,
		Now:     func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local) },
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	next, _ = next.Update(recordsLoadedMsg{records: makeRecords()})
	return next.(AppModel)
}

func press(m AppModel, keys ...string) (AppModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(AppModel)
	}
	return m, cmd
}

func TestVisibleRecords_MonitoredOnlyByDefault(t *testing.T) {
	got := visibleRecords(makeRecords(), false, "")
	if len(got) != 2 || got[0].WorkOrderRef != "BA-1" || got[1].WorkOrderRef != "BA-4" {
		t.Errorf("expected BA-1 and BA-4, got %+v", got)
	}
	if all := visibleRecords(makeRecords(), true, ""); len(all) != 4 {
		t.Errorf("expected all 4 records, got %d", len(all))
	}
}

func TestVisibleRecords_FuzzyFilter(t *testing.T) {
	got := visibleRecords(makeRecords(), true, "welle")
	if len(got) != 1 || got[0].WorkOrderRef != "BA-2" {
		t.Errorf("expected only BA-2, got %+v", got)
	}
	if got := visibleRecords(makeRecords(), true, "AB400"); len(got) == 0 || got[0].WorkOrderRef != "BA-4" {
		t.Errorf("expected BA-4 first for document filter, got %+v", got)
	}
}

func TestApp_FilterAndToggle(t *testing.T) {
	m := newTestModel(&fakeLocator{}, &fakeMonitor{})
	if len(m.visible) != 2 {
		t.Fatalf("expected 2 monitored records, got %d", len(m.visible))
	}

	m, _ = press(m, "a")
	if len(m.visible) != 4 {
		t.Fatalf("expected all records after toggle, got %d", len(m.visible))
	}

	m, _ = press(m, "/", "d", "e", "c", "k", "enter")
	if m.searching || m.query != "deck" {
		t.Fatalf("expected applied filter 'deck', got searching=%v query=%q", m.searching, m.query)
	}
	if len(m.visible) != 1 || m.visible[0].WorkOrderRef != "BA-3" {
		t.Errorf("expected BA-3 only, got %+v", m.visible)
	}

	m, _ = press(m, "esc")
	if m.query != "" || len(m.visible) != 4 {
		t.Errorf("expected filter cleared, got %q with %d records", m.query, len(m.visible))
	}
}

func TestApp_EnterFindsAndOpens(t *testing.T) {
	loc := &fakeLocator{result: locator.FindResult{OK: true, Path: "/z/TM000195055.stp"}}
	m := newTestModel(loc, &fakeMonitor{})

	m, cmd := press(m, "enter")
	if cmd == nil || m.busy == "" {
		t.Fatal("expected lookup command and busy state")
	}
	msg := cmd()
	if len(loc.queries) != 1 || loc.queries[0] != "Pos TM000195055 Flansch" {
		t.Errorf("expected lookup of first position text, got %v", loc.queries)
	}
	if len(loc.opened) != 1 {
		t.Errorf("expected drawing to be opened, got %v", loc.opened)
	}

	next, _ := m.Update(msg)
	m = next.(AppModel)
	if m.busy != "" || m.failed || !strings.Contains(m.status, "/z/TM000195055.stp") {
		t.Errorf("unexpected status %q (busy %q)", m.status, m.busy)
	}
}

func TestApp_NotFoundDoesNotOpen(t *testing.T) {
	loc := &fakeLocator{result: locator.FindResult{Reason: locator.ReasonNotFound}}
	m := newTestModel(loc, &fakeMonitor{})

	m, cmd := press(m, "j", "enter")
	next, _ := m.Update(cmd())
	m = next.(AppModel)

	if len(loc.opened) != 0 {
		t.Errorf("nothing must be opened, got %v", loc.opened)
	}
	if loc.queries[0] != "Gehäuse TM12345" {
		t.Errorf("expected second monitored record, got %q", loc.queries[0])
	}
	if !strings.Contains(m.status, "No drawing found") || !m.failed {
		t.Errorf("unexpected status %q (failed %v)", m.status, m.failed)
	}
}

func TestApp_ReindexAndCheckpoint(t *testing.T) {
	loc := &fakeLocator{}
	mon := &fakeMonitor{}
	m := newTestModel(loc, mon)

	m, cmd := press(m, "R")
	next, _ := m.Update(cmd())
	m = next.(AppModel)
	if loc.reindex != 1 || m.status != "Drawing catalog rebuilt" {
		t.Errorf("expected one forced reindex, got %d (%q)", loc.reindex, m.status)
	}

	m, cmd = press(m, "c")
	next, reload := m.Update(cmd())
	m = next.(AppModel)
	if mon.runs != 1 || !strings.Contains(m.status, "2 overdue") {
		t.Errorf("expected checkpoint status, got %q", m.status)
	}
	if reload == nil {
		t.Error("expected records to be reloaded after a checkpoint")
	}
}

func TestApp_PromptBlocksUntilDismissed(t *testing.T) {
	m := newTestModel(&fakeLocator{}, &fakeMonitor{})

	done := make(chan struct{})
	next, _ := m.Update(promptMsg{kind: desktop.PromptWarning, title: "Drawing drive not available", message: "connect Z:", done: done})
	m = next.(AppModel)
	if m.prompt == nil || !strings.Contains(m.View(), "Drawing drive not available") {
		t.Fatal("expected prompt to be shown")
	}

	// list keys are swallowed while the prompt is open
	m, _ = press(m, "a")
	if m.showAll {
		t.Error("keys must not reach the list while a prompt is open")
	}

	m, _ = press(m, "enter")
	select {
	case <-done:
	default:
		t.Fatal("expected prompt to be released")
	}
	if m.prompt != nil {
		t.Error("expected prompt to be closed")
	}
}

func TestPrompter_WithoutProgramDoesNotBlock(t *testing.T) {
	NewPrompter().Prompt(desktop.PromptWarning, "t", "m")
}

func TestPrompter_SendsAndWaits(t *testing.T) {
	pr := NewPrompter()
	got := make(chan promptMsg, 1)
	pr.send = func(msg tea.Msg) {
		pm := msg.(promptMsg)
		got <- pm
		close(pm.done)
	}

	pr.Prompt(desktop.PromptError, "Title", "Message")
	if pm := <-got; pm.title != "Title" || pm.kind != desktop.PromptError {
		t.Errorf("unexpected prompt %+v", pm)
	}
}

func TestBadge(t *testing.T) {
	today := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
	cases := map[string]records.WorkItemRecord{
		"OVERDUE 5d": {DueDate: "05.06.2024"},
		"DUE TODAY":  {DueDate: "10.06.2024"},
		"DUE IN 4d":  {DueDate: "14.06.24"},
		"in 10d":     {DueDate: "20.06.2024"},
		"no date":    {DueDate: "bald"},
		"done":       {DueDate: "05.06.2024", Done: true},
	}
	for want, r := range cases {
		if got := badge(r, today); !strings.Contains(got, want) {
			t.Errorf("badge(%q) = %q, want %q", r.DueDate, got, want)
		}
	}
}
