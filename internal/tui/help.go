package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lieferplaner/internal/tui/theme"
)

// HelpBind represents a single keybind entry
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related keybinds
type HelpSection struct {
	Title string
	Binds []HelpBind
}

var helpSections = []HelpSection{
	{
		Title: "Records",
		Binds: []HelpBind{
			{"j / k", "Navigate records"},
			{"g / G", "First / last record"},
			{"/", "Filter (BA, Beleg, Artikel, Position)"},
			{"esc", "Clear filter"},
			{"a", "Toggle all / monitored records"},
			{"r", "Reload records"},
		},
	},
	{
		Title: "Drawings",
		Binds: []HelpBind{
			{"enter", "Find and open STEP drawing"},
			{"R", "Rebuild drawing catalog"},
		},
	},
	{
		Title: "Monitor",
		Binds: []HelpBind{
			{"c", "Check due dates now"},
		},
	},
	{
		Title: "Global",
		Binds: []HelpBind{
			{"?", "Show this help"},
			{"q", "Quit"},
			{"ctrl+c", "Force quit"},
		},
	},
}

// RenderHelpPopup renders a centered help popup with the given sections
func RenderHelpPopup(sections []HelpSection, width, height int) string {
	line := func(key, desc string) string {
		return "  " + theme.HelpKey.Width(14).Render(key) + theme.HelpDesc.Render(desc)
	}

	var content string
	for i, section := range sections {
		if i > 0 {
			content += "\n"
		}
		content += theme.HelpSection.Render(section.Title) + "\n"
		for _, bind := range section.Binds {
			content += line(bind.Key, bind.Desc) + "\n"
		}
	}

	content += "\n" + theme.HelpHint.Render("Press any key to close")

	// Trim trailing newline before boxing
	content = strings.TrimRight(content, "\n")

	box := theme.ModalBox.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
