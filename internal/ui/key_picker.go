package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/benlindsay/keyup/internal/errors"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// KeyChoice contains information about a provisioned key for display in the picker.
type KeyChoice struct {
	Address     string // The address the key was generated for
	Path        string // Private key path
	Fingerprint string // SHA256 fingerprint, when the public half parses
	Algorithm   string // Key algorithm (ssh-ed25519, ssh-rsa, ...)
}

// keyItem implements list.Item for the Bubbles list component.
type keyItem struct {
	choice KeyChoice
}

func (i keyItem) Title() string {
	return i.choice.Address
}

func (i keyItem) Description() string {
	var parts []string

	if i.choice.Algorithm != "" {
		parts = append(parts, i.choice.Algorithm)
	}

	if i.choice.Fingerprint != "" {
		parts = append(parts, i.choice.Fingerprint)
	}

	if len(parts) == 0 {
		return i.choice.Path
	}

	return strings.Join(parts, " | ")
}

func (i keyItem) FilterValue() string {
	// Allow searching by address and path
	return i.choice.Address + " " + i.choice.Path
}

// KeyPickerModel is a Bubble Tea model for selecting a provisioned key.
type KeyPickerModel struct {
	list     list.Model
	choices  []KeyChoice
	selected *KeyChoice
	quitting bool
	width    int
	height   int
}

// keyPickerKeyMap defines key bindings for the picker.
type keyPickerKeyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

var keyPickerKeys = keyPickerKeyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "cancel"),
	),
}

// NewKeyPicker creates a picker over the given choices.
func NewKeyPicker(choices []KeyChoice) KeyPickerModel {
	items := make([]list.Item, len(choices))
	for i, c := range choices {
		items[i] = keyItem{choice: c}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorInfo).
		BorderLeftForeground(ColorInfo)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorMuted).
		BorderLeftForeground(ColorInfo)

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select a key"
	l.Styles.Title = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keyPickerKeys.Enter, keyPickerKeys.Quit}
	}

	return KeyPickerModel{
		list:    l,
		choices: choices,
	}
}

// Init implements tea.Model.
func (m KeyPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m KeyPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Don't intercept keys while the filter input is active
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, keyPickerKeys.Enter):
			if item, ok := m.list.SelectedItem().(keyItem); ok {
				choice := item.choice
				m.selected = &choice
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keyPickerKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m KeyPickerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Selected returns the chosen key, or nil if the user cancelled.
func (m KeyPickerModel) Selected() *KeyChoice {
	return m.selected
}

// PickKey runs the picker and returns the selected key.
// Returns nil (no error) when the user cancels.
func PickKey(choices []KeyChoice) (*KeyChoice, error) {
	if len(choices) == 0 {
		return nil, errors.New(errors.ErrKeygen,
			"No provisioned keys found",
			"Run 'keyup provision <address>' first")
	}

	model := NewKeyPicker(choices)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	final, err := program.Run()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExec,
			"Key picker failed",
			"Pass the address directly: keyup show <address>")
	}

	picker, ok := final.(KeyPickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type from picker")
	}

	return picker.Selected(), nil
}
