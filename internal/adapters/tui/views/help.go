package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tagmanager/internal/adapters/tui/styles"
	"tagmanager/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, func() tea.Msg {
			return SwitchToBrowserMsg{}
		}
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().Title("Tag Manager Help")

	v.Line(styles.InputLabel.Render("Navigation"))
	for _, b := range []key.Binding{BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.NextTab, BrowserKeys.PrevTab, BrowserKeys.PageDown, BrowserKeys.PageUp} {
		v.Line(helpLine(b))
	}
	v.BlankLine()

	v.Line(styles.InputLabel.Render("Filtering"))
	for _, b := range []key.Binding{BrowserKeys.Search, BrowserKeys.Difficulty, BrowserKeys.Sort} {
		v.Line(helpLine(b))
	}
	v.BlankLine()

	v.Line(styles.InputLabel.Render("Actions"))
	for _, b := range []key.Binding{BrowserKeys.New, BrowserKeys.Edit, BrowserKeys.Delete, BrowserKeys.Commit, BrowserKeys.Copy, BrowserKeys.Open, BrowserKeys.Reload} {
		v.Line(helpLine(b))
	}
	v.BlankLine()

	v.Line(styles.InputLabel.Render("Category rules"))
	for _, c := range domain.Categories {
		rule, _ := c.Rule()
		desc := "no extra fields"
		if len(rule.Required) > 0 {
			desc = "requires " + strings.Join(rule.Required, ", ")
		}
		v.Muted("  " + padRight(string(c), 12) + desc)
	}
	v.BlankLine()

	v.Help(HelpKeys.Close, BrowserKeys.Quit)
	return v.String()
}

func helpLine(b key.Binding) string {
	h := b.Help()
	return "  " + styles.HelpKey.Render(padRight(h.Key, 12)) + styles.HelpDesc.Render(h.Desc)
}
