package views

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tagmanager/internal/adapters/tui/styles"
)

// SearchKeyMap defines key bindings while the search bar has focus
type SearchKeyMap struct {
	Accept key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "keep filter"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
}

// SearchBar is the inline fuzzy search input of the browser
type SearchBar struct {
	input  textinput.Model
	active bool
}

// NewSearchBar creates an inactive search bar
func NewSearchBar() SearchBar {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "name, id or alias..."
	input.CharLimit = 64
	return SearchBar{input: input}
}

// Active reports whether the bar has keyboard focus
func (s *SearchBar) Active() bool {
	return s.active
}

// Query returns the current search text
func (s *SearchBar) Query() string {
	return s.input.Value()
}

// Focus gives the bar keyboard focus
func (s *SearchBar) Focus() tea.Cmd {
	s.active = true
	return s.input.Focus()
}

// Update handles a message while the bar is active. changed reports
// whether the query text changed.
func (s *SearchBar) Update(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	before := s.input.Value()

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, SearchKeys.Accept):
			s.active = false
			s.input.Blur()
			return false, nil
		case key.Matches(msg, SearchKeys.Cancel):
			s.active = false
			s.input.Blur()
			s.input.SetValue("")
			return before != "", nil
		}
	}

	s.input, cmd = s.input.Update(msg)
	return s.input.Value() != before, cmd
}

// View renders the bar, or nothing when inactive with an empty query
func (s *SearchBar) View() string {
	if !s.active && s.input.Value() == "" {
		return ""
	}
	if s.active {
		return styles.InputFocused.Render(s.input.View())
	}
	return styles.MutedText.Render("filter: " + s.input.Value())
}
