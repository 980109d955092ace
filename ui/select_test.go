package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func drive(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

func TestSelectModelChoosesUnderCursor(t *testing.T) {
	m := drive(newSelectModel("pick", []string{"a", "b", "c"}), "down", "down", "enter").(selectModel)
	assert.True(t, m.chosen)
	assert.False(t, m.canceled)
	assert.Equal(t, "c", m.choice)
}

func TestSelectModelCursorStaysInBounds(t *testing.T) {
	m := drive(newSelectModel("pick", []string{"a", "b"}), "up", "down", "down", "down", "enter").(selectModel)
	assert.Equal(t, "b", m.choice)
}

func TestSelectModelCancel(t *testing.T) {
	m := drive(newSelectModel("pick", []string{"a", "b"}), "down", "esc").(selectModel)
	assert.True(t, m.canceled)
	assert.False(t, m.chosen)
}

func TestSelectModelViewListsAllItems(t *testing.T) {
	m := newSelectModel("pick a layer", []string{"ortho_a", "ortho_b"})
	view := m.View()
	assert.Contains(t, view, "pick a layer")
	assert.Contains(t, view, "ortho_a")
	assert.Contains(t, view, "ortho_b")
}

func TestPromptModelEnter(t *testing.T) {
	m := newPromptModel("path", "")
	var model tea.Model = m
	for _, r := range "/opt/aw" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	pm := model.(promptModel)
	assert.True(t, pm.entered)
	assert.Equal(t, "/opt/aw", pm.value)
}

func TestPromptModelTrimsInput(t *testing.T) {
	m := newPromptModel("path", "")
	var model tea.Model = m
	for _, r := range "  /opt/aw  " {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "/opt/aw", model.(promptModel).value)
}

func TestPromptModelCancel(t *testing.T) {
	model, _ := newPromptModel("path", "").Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, model.(promptModel).canceled)
}

func TestMessageModelDismissOnAnyKey(t *testing.T) {
	m := messageModel{title: "No raster layer opened", text: "load one and try again"}
	assert.True(t, strings.Contains(m.View(), "No raster layer opened"))
	_, cmd := m.Update(key("x"))
	assert.NotNil(t, cmd, "any key quits the dialog")
}
