package tui

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tagmanager/internal/adapters/tui/views"
	"tagmanager/internal/application"
	"tagmanager/internal/application/clientstate"
	"tagmanager/internal/domain"
)

// stubAPI serves a fixed collection and fails deletes when deleteErr is set
type stubAPI struct {
	tags      []domain.Tag
	deleteErr error
	committed string
}

func (s *stubAPI) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return slices.Clone(s.tags), nil
}

func (s *stubAPI) ListCategory(ctx context.Context, category domain.Category) ([]domain.Tag, error) {
	return domain.GroupByCategory(s.tags)[category], nil
}

func (s *stubAPI) CreateTag(ctx context.Context, category domain.Category, tag domain.Tag) (*domain.Tag, error) {
	tag.Category = category
	s.tags = append(s.tags, tag)
	return &tag, nil
}

func (s *stubAPI) UpdateTag(ctx context.Context, category domain.Category, id string, patch domain.Patch) (*domain.Tag, error) {
	return nil, &application.NotFoundError{Category: category, ID: id}
}

func (s *stubAPI) DeleteTag(ctx context.Context, category domain.Category, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	key := domain.Key{Category: category, ID: id}
	s.tags = slices.DeleteFunc(s.tags, func(t domain.Tag) bool { return t.Key() == key })
	return nil
}

func (s *stubAPI) Validate(ctx context.Context, tag domain.Tag) (*domain.ValidationResult, error) {
	res := application.Validate(tag, s.tags)
	return &res, nil
}

func (s *stubAPI) References(ctx context.Context, category domain.Category, id string) ([]domain.Reference, error) {
	return domain.FindReferences(s.tags, id), nil
}

func (s *stubAPI) GitStatus(ctx context.Context) (*domain.GitStatus, error) {
	return &domain.GitStatus{
		HasChanges: s.committed == "",
		Changes:    []domain.FileChange{{Status: domain.StatusModified, File: "task.yaml"}},
	}, nil
}

func (s *stubAPI) Commit(ctx context.Context, message string) (*domain.GitStatus, error) {
	s.committed = message
	return &domain.GitStatus{Changes: []domain.FileChange{}}, nil
}

func newTestApp(t *testing.T, api *stubAPI, opts ...Option) *App {
	t.Helper()
	api.tags = []domain.Tag{
		{ID: "refactor", Name: "Refactor", Category: domain.CategoryTask, Source: domain.SourceManual},
		{ID: "debug", Name: "Debug", Category: domain.CategoryTask, Source: domain.SourceManual},
	}
	a := NewApp(clientstate.New(api), opts...)
	t.Cleanup(a.Close)

	if err := a.store.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	a.Update(a.waitForChange())
	return a
}

func TestApp_ViewSwitching(t *testing.T) {
	a := newTestApp(t, &stubAPI{})

	steps := []struct {
		msg  tea.Msg
		want ViewState
	}{
		{views.SwitchToCreateMsg{Category: "Task"}, ViewForm},
		{views.SwitchToBrowserMsg{}, ViewBrowser},
		{views.SwitchToDeleteMsg{Tag: domain.Tag{ID: "debug", Category: domain.CategoryTask}}, ViewDelete},
		{views.SwitchToHelpMsg{}, ViewHelp},
		{tea.KeyMsg{Type: tea.KeyEsc}, ViewHelp}, // handled by the help view, switches on its command
		{views.SwitchToCommitMsg{}, ViewCommit},
		{views.SubmitCommitMsg{Message: "x"}, ViewBrowser},
	}

	for _, step := range steps {
		a.Update(step.msg)
		if a.State() != step.want {
			t.Fatalf("after %T: state = %v, want %v", step.msg, a.State(), step.want)
		}
	}
}

func TestApp_DeleteSuccess(t *testing.T) {
	api := &stubAPI{}
	a := newTestApp(t, api)

	_, cmd := a.Update(views.SubmitDeleteMsg{Key: domain.Key{Category: domain.CategoryTask, ID: "debug"}})
	msg := cmd()

	toast, ok := msg.(views.ToastMsg)
	if !ok || toast.IsErr || toast.Text != "Deleted Task/debug" {
		t.Fatalf("toast = %#v", msg)
	}
	if len(a.store.Tags()) != 1 {
		t.Errorf("store still has %d tags", len(a.store.Tags()))
	}

	a.Update(a.waitForChange())
	if got := a.browser.Visible(); len(got) != 1 || got[0].ID != "refactor" {
		t.Errorf("browser not refreshed: %+v", got)
	}
}

func TestApp_DeleteRollbackShowsError(t *testing.T) {
	api := &stubAPI{deleteErr: errors.New("server unreachable")}
	a := newTestApp(t, api)

	_, cmd := a.Update(views.SubmitDeleteMsg{Key: domain.Key{Category: domain.CategoryTask, ID: "debug"}})
	a.Update(cmd())

	if !strings.Contains(a.Toast(), "Delete failed: server unreachable") {
		t.Errorf("toast = %q", a.Toast())
	}
	if len(a.store.Tags()) != 2 {
		t.Errorf("delete was not rolled back")
	}
	if !strings.Contains(a.View(), "Delete failed") {
		t.Errorf("toast not rendered")
	}
}

func TestApp_ToastExpires(t *testing.T) {
	a := newTestApp(t, &stubAPI{})

	a.Update(views.ToastMsg{Text: "first"})
	stale := a.toastSeq
	a.Update(views.ToastMsg{Text: "second"})

	a.Update(clearToastMsg{seq: stale})
	if a.Toast() != "second" {
		t.Errorf("an older timer cleared a newer toast")
	}
	a.Update(clearToastMsg{seq: a.toastSeq})
	if a.Toast() != "" {
		t.Errorf("toast not cleared: %q", a.Toast())
	}
}

func TestApp_CreateAndCommit(t *testing.T) {
	api := &stubAPI{}
	a := newTestApp(t, api)

	_, cmd := a.Update(views.SubmitCreateMsg{
		Category: domain.CategoryTask,
		Tag:      domain.Tag{ID: "review", Name: "Review", Source: domain.SourceManual},
	})
	if toast := cmd().(views.ToastMsg); toast.Text != "Created Task/review" {
		t.Errorf("toast = %q", toast.Text)
	}

	_, cmd = a.Update(views.SubmitCommitMsg{Message: "Add review"})
	if toast := cmd().(views.ToastMsg); toast.Text != "Committed: Add review" {
		t.Errorf("toast = %q", toast.Text)
	}
	if api.committed != "Add review" {
		t.Errorf("commit not sent")
	}
	if git := a.store.Snapshot().Git; git == nil || git.HasChanges {
		t.Errorf("git status not refreshed: %+v", git)
	}
}

type stubEditor struct {
	path string
	line int
}

func (e *stubEditor) OpenFile(path string, line int) error {
	return nil
}

func (e *stubEditor) Command(path string, line int) (*exec.Cmd, error) {
	e.path, e.line = path, line
	return exec.Command("true"), nil
}

type stubFiles struct{}

func (stubFiles) CategoryPath(category domain.Category) string {
	return "/tags/" + category.FileName()
}

func (stubFiles) Locate(category domain.Category, id string) (int, error) {
	return 7, nil
}

func TestApp_OpenEditor(t *testing.T) {
	a := newTestApp(t, &stubAPI{})
	a.Update(views.OpenEditorMsg{Key: domain.Key{Category: domain.CategoryTask, ID: "debug"}})
	if !strings.Contains(a.Toast(), "local tags directory") {
		t.Errorf("expected a toast without an editor, got %q", a.Toast())
	}

	ed := &stubEditor{}
	a = newTestApp(t, &stubAPI{}, WithEditor(ed, stubFiles{}))
	_, cmd := a.Update(views.OpenEditorMsg{Key: domain.Key{Category: domain.CategoryTask, ID: "debug"}})
	if cmd == nil {
		t.Fatal("expected an exec command")
	}
	if ed.path != "/tags/task.yaml" || ed.line != 7 {
		t.Errorf("editor called with %q:%d", ed.path, ed.line)
	}
}
