package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))
	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// selectModel is a single-selection modal list. Enter confirms, esc cancels.
type selectModel struct {
	title    string
	items    []string
	cursor   int
	choice   string
	chosen   bool
	canceled bool
}

func newSelectModel(title string, items []string) selectModel {
	return selectModel{title: title, items: items}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.choice = m.items[m.cursor]
			m.chosen = true
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, item := range m.items {
		line := "  " + item
		if i == m.cursor {
			line = cursorStyle.Render("› ") + selectedStyle.Render(item)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[↑↓] Move | [Enter] Select | [Esc] Cancel"))
	b.WriteString("\n")
	return b.String()
}

// SelectItem runs a single-selection dialog over items and returns the chosen
// one. ok is false when the user cancels.
func SelectItem(title string, items []string) (choice string, ok bool, err error) {
	if len(items) == 0 {
		err = fmt.Errorf("selection dialog needs at least one item")
		return
	}
	final, err := tea.NewProgram(newSelectModel(title, items)).Run()
	if err != nil {
		return
	}
	m := final.(selectModel)
	if m.canceled || !m.chosen {
		return
	}
	return m.choice, true, nil
}
