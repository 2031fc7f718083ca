package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel is a yes/no prompt with a detail listing, defaulting to no.
// Used before destructive operations like batch cancellation.
type ConfirmModel struct {
	styles   Styles
	prompt   string
	details  []string
	accepted bool
}

// NewConfirm builds a confirmation prompt. details are shown verbatim
// between the prompt and the answer line.
func NewConfirm(prompt string, details []string, themeName string) ConfirmModel {
	return ConfirmModel{
		styles:  GetTheme(themeName).Styles(),
		prompt:  prompt,
		details: details,
	}
}

// Accepted reports whether the user explicitly answered yes.
func (m ConfirmModel) Accepted() bool {
	return m.accepted
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.accepted = true
		return m, tea.Quit
	case "n", "N", "enter", "esc", "ctrl+c":
		m.accepted = false
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.WarningText.Render(m.prompt))
	b.WriteString("\n\n")
	for _, line := range m.details {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Text.Render("Proceed? [y/N] "))
	b.WriteString("\n")
	return b.String()
}
