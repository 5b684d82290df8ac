package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tagmanager/internal/adapters/tui/styles"
	"tagmanager/internal/domain"
)

// ConfirmKeyMap holds the answer keys of a yes/no prompt
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var ConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel is embedded by views asking a yes/no question about
// one tag
type ConfirmationModel struct {
	ViewState
	Target domain.Tag
	Keys   ConfirmKeyMap
}

func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{Keys: ConfirmKeys}
}

// Answer maps a key to yes or no. Other keys return a nil command.
func (m *ConfirmationModel) Answer(msg tea.KeyMsg, yes, no tea.Msg) tea.Cmd {
	var answer tea.Msg
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		answer = yes
	case key.Matches(msg, m.Keys.Cancel):
		answer = no
	default:
		return nil
	}
	return func() tea.Msg { return answer }
}

// RenderConfirmPrompt renders question followed by the answer keys
func RenderConfirmPrompt(question string, keys ConfirmKeyMap) string {
	return fmt.Sprintf("%s  %s", question, RenderHelpLine(keys.Confirm, keys.Cancel))
}

// RenderTargetInfo renders "<action>:" and the tag below it
func RenderTargetInfo(t domain.Tag, action string) string {
	return fmt.Sprintf("%s\n  %s %s  %s",
		styles.InputLabel.Render(action+":"),
		styles.CategoryLabel(t.Category),
		styles.TagID.Render(t.ID),
		t.Name,
	)
}
