package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tagmanager/internal/adapters/tui/styles"
	"tagmanager/internal/domain"
)

// CommitModel asks for a commit message and shows what will be committed
type CommitModel struct {
	ViewState
	input  textinput.Model
	status *domain.GitStatus
}

// NewCommitModel creates a new commit view model
func NewCommitModel() *CommitModel {
	input := textinput.New()
	input.Placeholder = "Commit message"
	input.CharLimit = 200
	return &CommitModel{input: input}
}

// Start clears the message and shows status
func (m *CommitModel) Start(status *domain.GitStatus) tea.Cmd {
	m.status = status
	m.input.SetValue("")
	m.ClearMessage()
	return m.input.Focus()
}

// SetStatus updates the pending changes shown
func (m *CommitModel) SetStatus(status *domain.GitStatus) {
	m.status = status
}

func (m *CommitModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the commit view
func (m *CommitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, DefaultInputFormKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, DefaultInputFormKeys.Submit):
			message := m.input.Value()
			if message == "" {
				m.SetMessage("Commit message is required", true)
				return m, nil
			}
			return m, func() tea.Msg { return SubmitCommitMsg{Message: message} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the commit view
func (m *CommitModel) View() string {
	v := NewViewBuilder().Title("Commit Changes")

	switch {
	case m.status == nil:
		v.Muted("Git status unknown")
	case m.status.Error != "":
		v.Line(RenderMessage("git: "+m.status.Error, true))
	case !m.status.HasChanges:
		v.Muted("Nothing to commit")
	default:
		for _, c := range m.status.Changes {
			v.Line(fmt.Sprintf("  %s %s", styles.DifficultyBadge.Render(string(c.Status)), c.File))
		}
	}
	v.BlankLine()

	v.Line(styles.InputFocused.Render(m.input.View())).BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(DefaultInputFormKeys.Submit, DefaultInputFormKeys.Cancel)
	return v.String()
}
