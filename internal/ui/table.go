package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling. The table is
// unfocused; callers render a static view with View() for CLI output.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	// Apply styling
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(string(ColorMuted))).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(string(ColorPrimary)))
	s.Cell = s.Cell.
		Foreground(lipgloss.Color(string(ColorPrimary)))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(string(ColorPrimary))).
		Background(lipgloss.Color(string(ColorMuted))).
		Bold(false)

	t.SetStyles(s)
	return t
}
