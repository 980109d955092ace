// Package ui provides the terminal renditions of the bridge's modal dialogs.
package ui

// TermDialogs implements the bridge's dialog surface on bubbletea modals.
type TermDialogs struct{}

func (TermDialogs) SelectLayer(names []string) (string, bool, error) {
	return SelectItem("Please, select a layer to work with:", names)
}

func (TermDialogs) PromptPlannerPath() (string, bool) {
	return PromptText("Please, write path to AerialWare folder:", "/path/to/aerialware")
}

func (TermDialogs) ShowError(title, text string) error {
	return ShowMessage(title, text)
}
