package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"lieferplaner/internal/records"
	"lieferplaner/internal/tui/theme"
)

// searchText is what the filter matches against.
func searchText(r records.WorkItemRecord) string {
	return strings.Join([]string{r.WorkOrderRef, r.DocumentRef, r.ArticleRef, r.PositionText}, " ")
}

// visibleRecords applies the monitored-only toggle and the fuzzy filter. With a
// query the result is ordered by match score, otherwise by store order.
func visibleRecords(all []records.WorkItemRecord, showAll bool, query string) []records.WorkItemRecord {
	base := make([]records.WorkItemRecord, 0, len(all))
	for _, r := range all {
		if showAll || r.Monitored() {
			base = append(base, r)
		}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return base
	}

	haystack := make([]string, len(base))
	for i, r := range base {
		haystack[i] = searchText(r)
	}
	matches := fuzzy.Find(query, haystack)

	out := make([]records.WorkItemRecord, len(matches))
	for i, m := range matches {
		out[i] = base[m.Index]
	}
	return out
}

func badge(r records.WorkItemRecord, today time.Time) string {
	switch {
	case bool(r.Done):
		return theme.BadgeNone.Render("done")
	case bool(r.Arrived):
		return theme.BadgeNone.Render("arrived")
	}
	u, days, ok := records.DueDateUrgency(r.DueDate, today)
	if !ok {
		return theme.BadgeNone.Render("no date")
	}
	switch u {
	case records.Overdue:
		return theme.BadgeOverdue.Render(fmt.Sprintf("OVERDUE %dd", -days))
	case records.DueSoon:
		if days == 0 {
			return theme.BadgeDueSoon.Render("DUE TODAY")
		}
		return theme.BadgeDueSoon.Render(fmt.Sprintf("DUE IN %dd", days))
	default:
		return theme.BadgeNotDue.Render(fmt.Sprintf("in %dd", days))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func renderRow(r records.WorkItemRecord, today time.Time, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = theme.Cursor.Render("> ")
	}

	due := r.DueDate
	if due == "" {
		due = "-"
	}
	head := fmt.Sprintf("%s %s %s  %s",
		theme.WorkOrder.Render(orDash(r.WorkOrderRef)),
		theme.Document.Render(orDash(r.DocumentRef)),
		orDash(r.ArticleRef),
		due,
	)
	line := cursor + badge(r, today) + " " + head

	// position text gets whatever width is left
	used := lipgloss.Width(line) + 2
	pos := strings.Join(strings.Fields(r.PositionText), " ")
	if avail := width - used; pos != "" && avail > 8 {
		line += "  " + theme.Muted.Render(truncate(pos, avail))
	}

	if r.Done || r.Arrived {
		line = theme.Done.Render(line)
	}
	if selected {
		line = theme.SelectedBg.Render(line)
	}
	return line
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
