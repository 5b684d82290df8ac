package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tagmanager/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
}

// InputField is one labelled text input. Name is the tag field it edits.
type InputField struct {
	Name  string
	Label string
	Input textinput.Model
}

// InputForm manages multiple text input fields with focus handling
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
}

// NewInputForm creates a new input form with the given fields
func NewInputForm(fields ...InputField) *InputForm {
	form := &InputForm{
		Fields: fields,
		Keys:   DefaultInputFormKeys,
	}
	if len(fields) > 0 {
		form.Fields[0].Input.Focus()
	}
	return form
}

// NewInputField creates a new input field
func NewInputField(name, label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{
		Name:  name,
		Label: label,
		Input: input,
	}
}

// Update handles messages for the input form.
// Returns (handled, cmd) where handled is true if the key was processed.
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.Keys.Next):
			f.SetFocus((f.FocusedField + 1) % len(f.Fields))
			return true, nil
		case key.Matches(msg, f.Keys.Prev):
			f.SetFocus((f.FocusedField + len(f.Fields) - 1) % len(f.Fields))
			return true, nil
		}
	}

	var cmd tea.Cmd
	if f.FocusedField >= 0 && f.FocusedField < len(f.Fields) {
		f.Fields[f.FocusedField].Input, cmd = f.Fields[f.FocusedField].Input.Update(msg)
	}
	return false, cmd
}

// SetFocus sets focus to a specific field
func (f *InputForm) SetFocus(index int) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	if f.FocusedField >= 0 && f.FocusedField < len(f.Fields) {
		f.Fields[f.FocusedField].Input.Blur()
	}
	f.FocusedField = index
	f.Fields[f.FocusedField].Input.Focus()
}

// Value returns the trimmed value of the named field
func (f *InputForm) Value(name string) string {
	for _, field := range f.Fields {
		if field.Name == name {
			return strings.TrimSpace(field.Input.Value())
		}
	}
	return ""
}

// SetValue sets the value of the named field
func (f *InputForm) SetValue(name, value string) {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			f.Fields[i].Input.SetValue(value)
			return
		}
	}
}

// Reset clears all field values and resets focus to the first field
func (f *InputForm) Reset() {
	for i := range f.Fields {
		f.Fields[i].Input.SetValue("")
		f.Fields[i].Input.Blur()
	}
	f.FocusedField = 0
	if len(f.Fields) > 0 {
		f.Fields[0].Input.Focus()
	}
}

// RenderField renders a single field with appropriate styling
func (f *InputForm) RenderField(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}

	field := f.Fields[index]
	label := styles.InputLabel.Render(padRight(field.Label, 16))
	box := styles.InputField
	if index == f.FocusedField {
		box = styles.InputFocused
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box.Render(field.Input.View()))
}

// RenderHelp renders the help text for the form
func (f *InputForm) RenderHelp(submitText string) string {
	var parts []string
	if len(f.Fields) > 1 {
		parts = append(parts, styles.HelpKey.Render("tab")+" "+styles.HelpDesc.Render("next field"))
	}
	parts = append(parts, styles.HelpKey.Render("enter")+" "+styles.HelpDesc.Render(submitText))
	parts = append(parts, styles.HelpKey.Render("esc")+" "+styles.HelpDesc.Render("cancel"))

	return strings.Join(parts, "  ")
}
