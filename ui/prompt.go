package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptModel is a modal one-line text prompt. Enter confirms, esc cancels.
type promptModel struct {
	title    string
	input    textinput.Model
	value    string
	entered  bool
	canceled bool
}

func newPromptModel(title, placeholder string) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60
	return promptModel{title: title, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.value = strings.TrimSpace(m.input.Value())
			m.entered = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[Enter] Confirm | [Esc] Cancel"))
	b.WriteString("\n")
	return b.String()
}

// PromptText runs a one-line text prompt. ok is false when the user cancels
// or submits an empty line.
func PromptText(title, placeholder string) (value string, ok bool) {
	final, err := tea.NewProgram(newPromptModel(title, placeholder)).Run()
	if err != nil {
		return
	}
	m := final.(promptModel)
	if m.canceled || !m.entered || m.value == "" {
		return
	}
	return m.value, true
}
