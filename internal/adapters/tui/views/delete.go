package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tagmanager/internal/adapters/tui/styles"
	"tagmanager/internal/application/clientstate"
	"tagmanager/internal/domain"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	store    *clientstate.Store
	dangling []domain.Reference
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(store *clientstate.Store) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		store:             store,
	}
}

// SetTarget selects the tag to delete and lists the tags that would be
// left pointing at it
func (m *DeleteModel) SetTarget(t domain.Tag) {
	m.Target = t
	m.dangling = nil
	for _, ref := range domain.FindReferences(m.store.Tags(), t.ID) {
		if ref.Source != t.Key() {
			m.dangling = append(m.dangling, ref)
		}
	}
}

// Dangling returns the references the delete would break
func (m *DeleteModel) Dangling() []domain.Reference {
	return m.dangling
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m, m.Answer(msg, SubmitDeleteMsg{Key: m.Target.Key()}, SwitchToBrowserMsg{})
	}
	return m, nil
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	v := NewViewBuilder().Title("Delete Tag")

	v.Line(RenderTargetInfo(m.Target, "Delete")).BlankLine()

	if len(m.dangling) > 0 {
		v.Line(styles.ErrorMsg.Render(fmt.Sprintf("%d tags still reference %s:", len(m.dangling), m.Target.ID)))
		for _, ref := range m.dangling {
			v.Muted(fmt.Sprintf("  %s (%s)", ref.Source, ref.Kind))
		}
		v.BlankLine()
	}

	v.Raw(RenderConfirmPrompt("Are you sure?", m.Keys))
	return v.String()
}
