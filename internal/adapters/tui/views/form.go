package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tagmanager/internal/adapters/tui/styles"
	"tagmanager/internal/application/clientstate"
	"tagmanager/internal/domain"
)

// FormKeyMap holds the form keys beyond the input form's own
type FormKeyMap struct {
	Category key.Binding
}

var FormKeys = FormKeyMap{
	Category: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "change category"),
	),
}

// FormMode tells whether the form creates a new tag or edits one
type FormMode int

const (
	FormModeCreate FormMode = iota
	FormModeEdit
)

// TagFormModel creates or edits one tag. Input is checked against the
// local collection before anything is sent.
type TagFormModel struct {
	ViewState
	store *clientstate.Store

	mode     FormMode
	category domain.Category
	original domain.Tag
	form     *InputForm
	errors   []string
}

// NewTagFormModel creates an empty form
func NewTagFormModel(store *clientstate.Store) *TagFormModel {
	m := &TagFormModel{store: store, category: domain.CategoryConcept}
	m.form = newTagInputs()
	return m
}

func newTagInputs() *InputForm {
	return NewInputForm(
		NewInputField(domain.FieldID, "ID", "e.g. recursion", 64),
		NewInputField(domain.FieldName, "Name", "Display name", 100),
		NewInputField(domain.FieldSubcategory, "Subcategory", "e.g. Fundamentals", 40),
		NewInputField(domain.FieldDifficulty, "Difficulty", "basic, intermediate or advanced", 20),
		NewInputField(domain.FieldSource, "Source", "manual, GitHub, TIOBE...", 40),
		NewInputField(domain.FieldGranularity, "Granularity", "e.g. framework", 40),
		NewInputField(domain.FieldLanguageScope, "Language scope", "comma separated Language ids", 200),
		NewInputField(domain.FieldAliases, "Aliases", "comma separated", 200),
		NewInputField(domain.FieldPrerequisites, "Prerequisites", "comma separated ids", 200),
		NewInputField(domain.FieldRelated, "Related", "comma separated ids", 200),
		NewInputField(domain.FieldDescription, "Description", "", 500),
	)
}

// StartCreate resets the form for a new tag. An empty or unknown
// category falls back to the first one.
func (m *TagFormModel) StartCreate(category string) tea.Cmd {
	m.mode = FormModeCreate
	m.original = domain.Tag{}
	m.category = domain.Categories[0]
	if c, ok := domain.ParseCategory(category); ok {
		m.category = c
	}
	m.form.Reset()
	m.form.SetValue(domain.FieldSource, string(domain.SourceManual))
	m.errors = nil
	m.ClearMessage()
	return textinput.Blink
}

// StartEdit fills the form with tag
func (m *TagFormModel) StartEdit(tag domain.Tag) tea.Cmd {
	m.mode = FormModeEdit
	m.original = tag.Clone()
	m.category = tag.Category
	m.form.Reset()
	m.form.SetValue(domain.FieldID, tag.ID)
	m.form.SetValue(domain.FieldName, tag.Name)
	m.form.SetValue(domain.FieldSubcategory, tag.Subcategory)
	m.form.SetValue(domain.FieldDifficulty, string(tag.Difficulty))
	m.form.SetValue(domain.FieldSource, string(tag.Source))
	m.form.SetValue(domain.FieldGranularity, tag.Granularity)
	m.form.SetValue(domain.FieldLanguageScope, strings.Join(tag.LanguageScope, ", "))
	m.form.SetValue(domain.FieldAliases, strings.Join(tag.Aliases, ", "))
	m.form.SetValue(domain.FieldPrerequisites, strings.Join(tag.Prerequisites, ", "))
	m.form.SetValue(domain.FieldRelated, strings.Join(tag.Related, ", "))
	m.form.SetValue(domain.FieldDescription, tag.Description)
	m.form.SetFocus(1)
	m.errors = nil
	m.ClearMessage()
	return textinput.Blink
}

func (m *TagFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form
func (m *TagFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit()

		case key.Matches(msg, FormKeys.Category):
			if m.mode == FormModeCreate {
				m.nextCategory()
			}
			return m, nil
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *TagFormModel) nextCategory() {
	for i, c := range domain.Categories {
		if c == m.category {
			m.category = domain.Categories[(i+1)%len(domain.Categories)]
			return
		}
	}
	m.category = domain.Categories[0]
}

// Candidate returns the tag the form currently describes. In edit mode
// fields the form does not show are carried over from the original.
func (m *TagFormModel) Candidate() domain.Tag {
	tag := m.original.Clone()
	tag.ID = m.form.Value(domain.FieldID)
	tag.Name = m.form.Value(domain.FieldName)
	tag.Category = m.category
	tag.Subcategory = m.form.Value(domain.FieldSubcategory)
	tag.Difficulty = domain.Difficulty(m.form.Value(domain.FieldDifficulty))
	tag.Source = domain.Source(m.form.Value(domain.FieldSource))
	tag.Granularity = m.form.Value(domain.FieldGranularity)
	tag.LanguageScope = splitList(m.form.Value(domain.FieldLanguageScope))
	tag.Aliases = splitList(m.form.Value(domain.FieldAliases))
	tag.Prerequisites = splitList(m.form.Value(domain.FieldPrerequisites))
	tag.Related = splitList(m.form.Value(domain.FieldRelated))
	tag.Description = m.form.Value(domain.FieldDescription)
	return tag
}

// submit validates locally and hands the request to the app. Invalid
// input stays in the form with every violated rule listed.
func (m *TagFormModel) submit() tea.Cmd {
	candidate := m.Candidate()

	if m.mode == FormModeCreate {
		result := m.store.Check(candidate)
		if !result.Valid {
			m.errors = result.Errors
			return nil
		}
		m.errors = nil
		category := m.category
		return func() tea.Msg { return SubmitCreateMsg{Category: category, Tag: candidate} }
	}

	patch := domain.Diff(m.original, candidate)
	if len(patch) == 0 {
		return tea.Batch(
			func() tea.Msg { return SwitchToBrowserMsg{} },
			func() tea.Msg { return ToastMsg{Text: "No changes"} },
		)
	}

	k := m.original.Key()
	result, err := m.store.CheckUpdate(k.Category, k.ID, patch)
	if err != nil {
		m.errors = []string{err.Error()}
		return nil
	}
	if !result.Valid {
		m.errors = result.Errors
		return nil
	}
	m.errors = nil
	return func() tea.Msg { return SubmitUpdateMsg{Key: k, Patch: patch} }
}

// Errors returns the violations found by the last submit
func (m *TagFormModel) Errors() []string {
	return m.errors
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// View renders the form
func (m *TagFormModel) View() string {
	v := NewViewBuilder()
	if m.mode == FormModeEdit {
		v.Title(fmt.Sprintf("Edit %s", m.original.Key()))
	} else {
		v.Title("New Tag")
	}

	category := styles.CategoryLabel(m.category)
	if m.mode == FormModeCreate {
		category += "  " + RenderKeyHelp(FormKeys.Category)
	}
	v.Line(RenderLabelValue("Category", category)).BlankLine()

	if rule, ok := m.category.Rule(); ok && len(rule.Required) > 0 {
		v.Subtitle("Required for " + string(m.category) + ": " + strings.Join(rule.Required, ", "))
	}

	for i := range m.form.Fields {
		v.Line(m.form.RenderField(i))
	}
	v.BlankLine()

	if len(m.errors) > 0 {
		v.Line(RenderErrorList(m.errors)).BlankLine()
	}
	v.Message(m.Message, m.MessageErr)

	submit := "create"
	if m.mode == FormModeEdit {
		submit = "save"
	}
	v.Raw(m.form.RenderHelp(submit))
	return v.String()
}
