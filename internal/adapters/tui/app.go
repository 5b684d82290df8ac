package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tagmanager/internal/adapters/tui/views"
	"tagmanager/internal/application/clientstate"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// ToastDuration is how long a status message stays on screen
const ToastDuration = 5 * time.Second

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewForm
	ViewDelete
	ViewCommit
	ViewHelp
)

// FileLocator finds a tag in the local category files
type FileLocator interface {
	CategoryPath(category domain.Category) string
	Locate(category domain.Category, id string) (int, error)
}

// Option configures an App
type Option func(*App)

// WithEditor enables opening tags in $EDITOR. Only useful when the
// category files are on this machine.
func WithEditor(opener ports.EditorOpener, files FileLocator) Option {
	return func(a *App) {
		a.editor = opener
		a.files = files
	}
}

// App is the main TUI application model
type App struct {
	store  *clientstate.Store
	editor ports.EditorOpener
	files  FileLocator

	state   ViewState
	browser *views.BrowserModel
	form    *views.TagFormModel
	del     *views.DeleteModel
	commit  *views.CommitModel
	help    *views.HelpModel

	toast    string
	toastErr bool
	toastSeq int

	updates     chan clientstate.Snapshot
	unsubscribe func()
}

// NewApp creates a new TUI application over store
func NewApp(store *clientstate.Store, opts ...Option) *App {
	a := &App{
		store:   store,
		state:   ViewBrowser,
		form:    views.NewTagFormModel(store),
		del:     views.NewDeleteModel(store),
		commit:  views.NewCommitModel(),
		help:    views.NewHelpModel(),
		updates: make(chan clientstate.Snapshot, 1),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.browser = views.NewBrowserModel(store, a.editor != nil && a.files != nil)
	a.unsubscribe = store.Subscribe(a.publish)
	return a
}

// publish hands the latest snapshot to the event loop. Only the newest
// pending snapshot is kept.
func (a *App) publish(snap clientstate.Snapshot) {
	for {
		select {
		case a.updates <- snap:
			return
		default:
			select {
			case <-a.updates:
			default:
			}
		}
	}
}

type storeChangedMsg struct {
	snap clientstate.Snapshot
}

type clearToastMsg struct {
	seq int
}

type editorFinishedMsg struct {
	err error
}

func (a *App) waitForChange() tea.Msg {
	return storeChangedMsg{snap: <-a.updates}
}

// Init starts listening to the store and loads the taxonomy
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitForChange, a.load(), a.refreshGit())
}

// Close stops listening to the store
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.browser.SetSize(msg.Width, msg.Height)
		a.form.SetSize(msg.Width, msg.Height)
		a.del.SetSize(msg.Width, msg.Height)
		a.commit.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case storeChangedMsg:
		a.browser.Refresh(msg.snap)
		a.commit.SetStatus(msg.snap.Git)
		return a, a.waitForChange

	case views.ToastMsg:
		return a, a.showToast(msg.Text, msg.IsErr)

	case clearToastMsg:
		if msg.seq == a.toastSeq {
			a.toast = ""
		}
		return a, nil

	// View switching messages
	case views.SwitchToCreateMsg:
		a.state = ViewForm
		return a, a.form.StartCreate(msg.Category)

	case views.SwitchToEditMsg:
		a.state = ViewForm
		return a, a.form.StartEdit(msg.Tag)

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.del.SetTarget(msg.Tag)
		return a, nil

	case views.SwitchToCommitMsg:
		a.state = ViewCommit
		return a, tea.Batch(a.commit.Start(a.store.Snapshot().Git), a.refreshGit())

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	// Store requests. The store applies the change locally before the
	// remote call returns, so the browser updates right away.
	case views.SubmitCreateMsg:
		a.state = ViewBrowser
		return a, a.create(msg.Category, msg.Tag)

	case views.SubmitUpdateMsg:
		a.state = ViewBrowser
		return a, a.update(msg.Key, msg.Patch)

	case views.SubmitDeleteMsg:
		a.state = ViewBrowser
		return a, a.delete(msg.Key, len(a.del.Dangling()))

	case views.SubmitCommitMsg:
		a.state = ViewBrowser
		return a, a.commitChanges(msg.Message)

	case views.ReloadMsg:
		return a, tea.Batch(a.load(), a.refreshGit())

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Key)

	case editorFinishedMsg:
		if msg.err != nil {
			return a, a.showToast(fmt.Sprintf("Editor failed: %v", msg.err), true)
		}
		return a, tea.Batch(a.load(), a.refreshGit())
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewDelete:
		_, cmd = a.del.Update(msg)
	case ViewCommit:
		_, cmd = a.commit.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) showToast(text string, isErr bool) tea.Cmd {
	a.toastSeq++
	a.toast = text
	a.toastErr = isErr
	seq := a.toastSeq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

func (a *App) load() tea.Cmd {
	return func() tea.Msg {
		if err := a.store.Load(context.Background()); err != nil {
			return views.ToastMsg{Text: fmt.Sprintf("Failed to load tags: %v", err), IsErr: true}
		}
		return nil
	}
}

func (a *App) refreshGit() tea.Cmd {
	return func() tea.Msg {
		a.syncGit()
		return nil
	}
}

// syncGit refreshes the git status; failures show up in the status line
func (a *App) syncGit() {
	_, _ = a.store.GitStatus(context.Background())
}

func (a *App) create(category domain.Category, tag domain.Tag) tea.Cmd {
	return func() tea.Msg {
		created, err := a.store.Create(context.Background(), category, tag)
		if err != nil {
			return views.ToastMsg{Text: fmt.Sprintf("Create failed: %v", err), IsErr: true}
		}
		a.syncGit()
		return views.ToastMsg{Text: fmt.Sprintf("Created %s", created.Key())}
	}
}

func (a *App) update(key domain.Key, patch domain.Patch) tea.Cmd {
	return func() tea.Msg {
		updated, err := a.store.Update(context.Background(), key.Category, key.ID, patch)
		if err != nil {
			return views.ToastMsg{Text: fmt.Sprintf("Update failed: %v", err), IsErr: true}
		}
		a.syncGit()
		return views.ToastMsg{Text: fmt.Sprintf("Updated %s", updated.Key())}
	}
}

func (a *App) delete(key domain.Key, dangling int) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.Delete(context.Background(), key.Category, key.ID); err != nil {
			return views.ToastMsg{Text: fmt.Sprintf("Delete failed: %v", err), IsErr: true}
		}
		a.syncGit()
		if dangling > 0 {
			return views.ToastMsg{Text: fmt.Sprintf("Deleted %s (%d tags still reference it)", key, dangling)}
		}
		return views.ToastMsg{Text: fmt.Sprintf("Deleted %s", key)}
	}
}

func (a *App) commitChanges(message string) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.store.Commit(context.Background(), message); err != nil {
			return views.ToastMsg{Text: fmt.Sprintf("Commit failed: %v", err), IsErr: true}
		}
		return views.ToastMsg{Text: "Committed: " + message}
	}
}

func (a *App) openEditor(key domain.Key) tea.Cmd {
	if a.editor == nil || a.files == nil {
		return a.showToast("Editing needs a local tags directory", true)
	}

	path := a.files.CategoryPath(key.Category)
	line, err := a.files.Locate(key.Category, key.ID)
	if err != nil {
		line = 0
	}

	cmd, err := a.editor.Command(path, line)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	var body string
	switch a.state {
	case ViewForm:
		body = a.form.View()
	case ViewDelete:
		body = a.del.View()
	case ViewCommit:
		body = a.commit.View()
	case ViewHelp:
		body = a.help.View()
	default:
		body = a.browser.View()
	}

	if a.toast == "" {
		return body
	}
	return body + "\n  " + views.RenderMessage(a.toast, a.toastErr)
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Toast returns the message currently shown, if any
func (a *App) Toast() string {
	return a.toast
}
