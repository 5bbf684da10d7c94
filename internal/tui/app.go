package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lieferplaner/internal/locator"
	"lieferplaner/internal/logs"
	"lieferplaner/internal/monitor"
	"lieferplaner/internal/records"
	"lieferplaner/internal/tui/theme"
)

// Records supplies the work items shown in the list.
type Records interface {
	Load() []records.WorkItemRecord
}

// Locator finds and opens drawings.
type Locator interface {
	FindDrawing(positionText string) locator.FindResult
	OpenDrawing(path string) bool
	Reindex(force bool) bool
}

// Checkpointer runs one monitor pass on demand.
type Checkpointer interface {
	RunOnce() monitor.Result
}

// Deps are the collaborators of the app model
type Deps struct {
	Records  Records
	Locator  Locator
	Monitor  Checkpointer
	AppName  string
	Interval time.Duration
	Now      func() time.Time
}

// AppModel is the root model: a filterable record list with drawing lookup
type AppModel struct {
	deps Deps

	all     []records.WorkItemRecord
	visible []records.WorkItemRecord
	cursor  int
	offset  int
	showAll bool

	searching   bool
	searchInput textinput.Model
	query       string

	prompt   *promptModal
	showHelp bool
	busy     string
	status   string
	failed   bool

	width  int
	height int
	ready  bool
}

// NewAppModel creates the root application model
func NewAppModel(deps Deps) AppModel {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.AppName == "" {
		deps.AppName = "Lieferplaner"
	}

	// Use inline search mode with lightweight textinput
	search := textinput.New()
	search.Placeholder = "type to filter..."
	search.CharLimit = 256
	search.Width = 40

	return AppModel{deps: deps, searchInput: search}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{loadRecords(m.deps.Records)}
	if m.deps.Interval > 0 {
		cmds = append(cmds, reloadEvery(m.deps.Interval))
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) refilter() {
	m.visible = visibleRecords(m.all, m.showAll, m.query)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
}

func (m *AppModel) listHeight() int {
	h := m.height - 5 // title, filter line, status bar
	if h < 1 {
		h = 1
	}
	return h
}

func (m *AppModel) clampOffset() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m AppModel) selected() (records.WorkItemRecord, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return records.WorkItemRecord{}, false
	}
	return m.visible[m.cursor], true
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.clampOffset()
		return m, nil

	case recordsLoadedMsg:
		m.all = msg.records
		m.refilter()
		return m, nil

	case reloadTickMsg:
		return m, tea.Batch(loadRecords(m.deps.Records), reloadEvery(m.deps.Interval))

	case promptMsg:
		// one prompt at a time; later ones return at once
		if m.prompt != nil {
			close(msg.done)
			return m, nil
		}
		m.prompt = &promptModal{msg: msg, width: 50}
		return m, nil

	case drawingMsg:
		m.busy = ""
		m.failed = !msg.result.OK || !msg.opened
		switch {
		case msg.result.OK && msg.opened:
			m.status = "Opened " + msg.result.Path
		case msg.result.OK:
			m.status = "Found " + msg.result.Path + " but could not open it"
		case msg.result.Reason == locator.ReasonNotReady:
			m.status = "Drawing drive not available"
		default:
			m.status = "No drawing found for " + strings.Join(strings.Fields(msg.text), " ")
		}
		return m, nil

	case reindexMsg:
		m.busy = ""
		m.failed = !msg.ok
		if msg.ok {
			m.status = "Drawing catalog rebuilt"
		} else {
			m.status = "Drawing drive not available, catalog unchanged"
		}
		return m, nil

	case checkpointMsg:
		m.busy = ""
		m.failed = false
		m.status = fmt.Sprintf("Checked: %d overdue, %d due soon newly notified",
			len(msg.result.Overdue), len(msg.result.DueSoon))
		return m, loadRecords(m.deps.Records)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.searching {
		// Forward non-key messages (like blink) to searchInput
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys: ctrl+c always quits
	if msg.String() == "ctrl+c" {
		if m.prompt != nil {
			m.prompt.dismiss()
		}
		return m, tea.Quit
	}

	if m.prompt != nil {
		switch msg.String() {
		case "enter", "esc", "q", " ":
			m.prompt.dismiss()
			m.prompt = nil
		}
		return m, nil
	}

	// Dismiss help overlay on any key
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.query = ""
			m.refilter()
			return m, nil
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		default:
			// Forward all keys to textinput (including j/k)
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.query = m.searchInput.Value()
			m.cursor = 0
			m.refilter()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.clampOffset()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.clampOffset()
		}
	case "g", "home":
		m.cursor = 0
		m.clampOffset()
	case "G", "end":
		m.cursor = max(len(m.visible)-1, 0)
		m.clampOffset()
	case "/":
		m.searching = true
		m.searchInput.SetValue(m.query)
		cmd := m.searchInput.Focus()
		return m, cmd
	case "esc":
		if m.query != "" {
			m.query = ""
			m.searchInput.SetValue("")
			m.refilter()
		}
	case "a":
		m.showAll = !m.showAll
		m.refilter()
	case "r":
		return m, loadRecords(m.deps.Records)
	case "enter":
		r, ok := m.selected()
		if !ok || m.busy != "" {
			return m, nil
		}
		m.busy = "Searching drawing…"
		logs.Logger.Printf("tui: lookup for %s %q", r.WorkOrderRef, r.PositionText)
		return m, findAndOpen(m.deps.Locator, r.PositionText)
	case "R":
		if m.busy != "" {
			return m, nil
		}
		m.busy = "Rebuilding drawing catalog…"
		return m, reindex(m.deps.Locator)
	case "c":
		if m.busy != "" {
			return m, nil
		}
		m.busy = "Checking due dates…"
		return m, checkpoint(m.deps.Monitor)
	}
	return m, nil
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return RenderHelpPopup(helpSections, m.width, m.height)
	}

	if m.prompt != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.prompt.View())
	}

	var b strings.Builder

	scope := "monitored"
	if m.showAll {
		scope = "all"
	}
	b.WriteString(theme.Title.Render(m.deps.AppName))
	b.WriteString(theme.Muted.Render(fmt.Sprintf("  %d of %d records (%s)", len(m.visible), len(m.all), scope)))
	b.WriteString("\n")

	switch {
	case m.searching:
		b.WriteString(theme.Subtitle.Render("/") + m.searchInput.View())
	case m.query != "":
		b.WriteString(theme.Muted.Render("filter: " + m.query + "  (esc to clear)"))
	}
	b.WriteString("\n\n")

	today := m.deps.Now()
	if len(m.visible) == 0 {
		b.WriteString(theme.Muted.Render("  No records."))
	}
	end := m.offset + m.listHeight()
	if end > len(m.visible) {
		end = len(m.visible)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(renderRow(m.visible[i], today, i == m.cursor, m.width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	content := lipgloss.NewStyle().Height(m.height - 2).Render(b.String())

	// busy state wins over the last result
	statusText := "enter:open drawing | /:filter | a:all | c:check | R:reindex | ?:help | q:quit"
	switch {
	case m.busy != "":
		statusText = theme.Warn.Render(m.busy)
	case m.failed:
		statusText = theme.Error.Render(m.status) + " | ?:help"
	case m.status != "":
		statusText = theme.Ok.Render(m.status) + " | ?:help"
	}

	statusBar := theme.StatusBar.Width(m.width).Render(theme.HelpHint.Render(statusText))

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}
