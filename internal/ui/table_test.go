package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
)

func TestNewTable_RendersRows(t *testing.T) {
	tbl := NewTable([]TableColumn{
		{Title: "ADDRESS", Width: 20},
		{Title: "TYPE", Width: 12},
	}, []table.Row{
		{"alice@example.com", "ssh-ed25519"},
		{"bob", "ssh-rsa"},
	})

	view := tbl.View()

	assert.Contains(t, view, "ADDRESS")
	assert.Contains(t, view, "TYPE")
	assert.Contains(t, view, "alice@example.com")
	assert.Contains(t, view, "bob")
}

func TestNewTable_EmptyRows(t *testing.T) {
	tbl := NewTable([]TableColumn{{Title: "ADDRESS", Width: 20}}, nil)

	view := tbl.View()
	assert.Contains(t, view, "ADDRESS", "header renders even with no rows")
}
