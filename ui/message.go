package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	errTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
	errBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1).
			Width(60)
)

// messageModel blocks on a message until any key is pressed.
type messageModel struct {
	title string
	text  string
}

func (m messageModel) Init() tea.Cmd {
	return nil
}

func (m messageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, isKey := msg.(tea.KeyMsg); isKey {
		return m, tea.Quit
	}
	return m, nil
}

func (m messageModel) View() string {
	var b strings.Builder
	b.WriteString(errBoxStyle.Render(
		errTitleStyle.Render(m.title) + "\n\n" + m.text))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Press any key to close"))
	b.WriteString("\n")
	return b.String()
}

// ShowMessage blocks on a modal message dialog until the user dismisses it.
func ShowMessage(title, text string) error {
	_, err := tea.NewProgram(messageModel{title: title, text: text}).Run()
	return err
}
