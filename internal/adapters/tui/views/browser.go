package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tagmanager/internal/adapters/tui/styles"
	"tagmanager/internal/application/clientstate"
	"tagmanager/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	PageDown   key.Binding
	PageUp     key.Binding
	Search     key.Binding
	Difficulty key.Binding
	Sort       key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Commit     key.Binding
	Copy       key.Binding
	Open       key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("l", "right", "tab"),
		key.WithHelp("l/→", "next category"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("h", "left", "shift+tab"),
		key.WithHelp("h/←", "previous category"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "next page"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "previous page"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Difficulty: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "difficulty"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Commit: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "commit"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open file"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// difficultyFilters is the cycle order of the d key
var difficultyFilters = []string{
	domain.FilterAll,
	string(domain.DifficultyBasic),
	string(domain.DifficultyIntermediate),
	string(domain.DifficultyAdvanced),
}

// BrowserModel lists the tags of the selected category tab
type BrowserModel struct {
	ViewState
	store *clientstate.Store

	search     SearchBar
	tab        int // 0 is "All", i is domain.Categories[i-1]
	difficulty int
	sort       int

	tags      []domain.Tag
	counts    map[domain.Category]int
	paginator *Paginator

	loaded     bool
	loading    bool
	loadErr    error
	git        *domain.GitStatus
	committing bool
	canOpen    bool
}

// NewBrowserModel creates a browser over store. canOpen enables the
// open-in-editor key.
func NewBrowserModel(store *clientstate.Store, canOpen bool) *BrowserModel {
	return &BrowserModel{
		store:     store,
		search:    NewSearchBar(),
		counts:    map[domain.Category]int{},
		paginator: NewPaginator(15),
		canOpen:   canOpen,
	}
}

// Refresh copies the store state into the view
func (m *BrowserModel) Refresh(snap clientstate.Snapshot) {
	m.loading = snap.Loading
	m.loadErr = snap.Err
	m.git = snap.Git
	m.committing = snap.Committing
	if !snap.Loading {
		m.loaded = true
	}
	m.counts = domain.CountByCategory(snap.Tags)
	m.refilter()
}

// Filter returns the filter the list is currently showing
func (m *BrowserModel) Filter() domain.Filter {
	return domain.Filter{
		Category:   m.Category(),
		Query:      m.search.Query(),
		Difficulty: difficultyFilters[m.difficulty],
		SortBy:     domain.SortFields[m.sort],
	}
}

// Category returns the category of the active tab, empty for "All"
func (m *BrowserModel) Category() domain.Category {
	if m.tab == 0 {
		return ""
	}
	return domain.Categories[m.tab-1]
}

// Visible returns the filtered list
func (m *BrowserModel) Visible() []domain.Tag {
	return m.tags
}

// refilter recomputes the list, keeping the cursor on the same tag when
// it is still visible
func (m *BrowserModel) refilter() {
	var current domain.Key
	if t, ok := m.Selected(); ok {
		current = t.Key()
	}

	m.tags = m.store.Filtered(m.Filter())
	m.paginator.SetTotal(len(m.tags))

	for i, t := range m.tags {
		if t.Key() == current {
			m.paginator.SetCursor(i)
			return
		}
	}
}

// Selected returns the tag under the cursor
func (m *BrowserModel) Selected() (domain.Tag, bool) {
	i := m.paginator.Cursor()
	if i >= 0 && i < len(m.tags) {
		return m.tags[i], true
	}
	return domain.Tag{}, false
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.search.Active() {
		changed, cmd := m.search.Update(msg)
		if changed {
			m.paginator.Home()
			m.refilter()
		}
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, BrowserKeys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, BrowserKeys.Up):
		m.paginator.CursorUp()

	case key.Matches(keyMsg, BrowserKeys.Down):
		m.paginator.CursorDown()

	case key.Matches(keyMsg, BrowserKeys.PageDown):
		m.paginator.NextPage()

	case key.Matches(keyMsg, BrowserKeys.PageUp):
		m.paginator.PrevPage()

	case key.Matches(keyMsg, BrowserKeys.NextTab):
		m.tab = (m.tab + 1) % (len(domain.Categories) + 1)
		m.paginator.Home()
		m.refilter()

	case key.Matches(keyMsg, BrowserKeys.PrevTab):
		m.tab = (m.tab + len(domain.Categories)) % (len(domain.Categories) + 1)
		m.paginator.Home()
		m.refilter()

	case key.Matches(keyMsg, BrowserKeys.Search):
		return m, m.search.Focus()

	case key.Matches(keyMsg, BrowserKeys.Difficulty):
		m.difficulty = (m.difficulty + 1) % len(difficultyFilters)
		m.refilter()

	case key.Matches(keyMsg, BrowserKeys.Sort):
		m.sort = (m.sort + 1) % len(domain.SortFields)
		m.refilter()

	case key.Matches(keyMsg, BrowserKeys.New):
		category := string(m.Category())
		return m, func() tea.Msg { return SwitchToCreateMsg{Category: category} }

	case key.Matches(keyMsg, BrowserKeys.Edit):
		if t, ok := m.Selected(); ok {
			return m, func() tea.Msg { return SwitchToEditMsg{Tag: t} }
		}

	case key.Matches(keyMsg, BrowserKeys.Delete):
		if t, ok := m.Selected(); ok {
			return m, func() tea.Msg { return SwitchToDeleteMsg{Tag: t} }
		}

	case key.Matches(keyMsg, BrowserKeys.Commit):
		return m, func() tea.Msg { return SwitchToCommitMsg{} }

	case key.Matches(keyMsg, BrowserKeys.Copy):
		if t, ok := m.Selected(); ok {
			return m, copyID(t.ID)
		}

	case key.Matches(keyMsg, BrowserKeys.Open):
		if t, ok := m.Selected(); ok && m.canOpen {
			k := t.Key()
			return m, func() tea.Msg { return OpenEditorMsg{Key: k} }
		}

	case key.Matches(keyMsg, BrowserKeys.Reload):
		return m, func() tea.Msg { return ReloadMsg{} }

	case key.Matches(keyMsg, BrowserKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return m, nil
}

func copyID(id string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(id); err != nil {
			return ToastMsg{Text: fmt.Sprintf("Copy failed: %v", err), IsErr: true}
		}
		return ToastMsg{Text: fmt.Sprintf("Copied %s", id)}
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	v := NewViewBuilder().Title("Tag Manager")

	v.Line(RenderTabs(m.tab, m.counts)).BlankLine()
	v.Line(m.renderStatusLine())
	if bar := m.search.View(); bar != "" {
		v.Line(bar)
	}
	v.BlankLine()

	switch {
	case !m.loaded:
		v.Muted("Loading...")
	case m.loadErr != nil && len(m.tags) == 0:
		v.Line(RenderMessage("Failed to load tags: "+m.loadErr.Error(), true))
	case len(m.tags) == 0:
		v.Muted("No tags")
	default:
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(RenderTagLine(m.tags[i], i == m.paginator.Cursor(), m.tab == 0))
		}
		if m.paginator.TotalPages() > 1 {
			v.BlankLine().Muted(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages()))
		}
	}

	if t, ok := m.Selected(); ok && t.Description != "" {
		v.BlankLine().Muted(t.Description)
	}

	v.BlankLine().Message(m.Message, m.MessageErr)
	v.Help(BrowserKeys.Search, BrowserKeys.Difficulty, BrowserKeys.Sort, BrowserKeys.New,
		BrowserKeys.Edit, BrowserKeys.Delete, BrowserKeys.Commit, BrowserKeys.Help, BrowserKeys.Quit)
	return v.String()
}

func (m *BrowserModel) renderStatusLine() string {
	parts := []string{
		fmt.Sprintf("%d shown", len(m.tags)),
		"difficulty: " + difficultyFilters[m.difficulty],
		"sort: " + string(domain.SortFields[m.sort]),
	}

	switch {
	case m.committing:
		parts = append(parts, "committing...")
	case m.git == nil:
	case m.git.Error != "":
		parts = append(parts, "git: unavailable")
	case m.git.HasChanges:
		parts = append(parts, fmt.Sprintf("git: %d uncommitted", len(m.git.Changes)))
	default:
		parts = append(parts, "git: clean")
	}
	if m.loading && m.loaded {
		parts = append(parts, "reloading...")
	}

	return styles.StatusText.Render(strings.Join(parts, "  |  "))
}

// SetSize updates the view dimensions and the page size
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(max(5, height-16))
}
