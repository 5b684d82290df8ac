package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	_ tea.Model = (*BrowserModel)(nil)
	_ tea.Model = (*CommitModel)(nil)
	_ tea.Model = (*DeleteModel)(nil)
	_ tea.Model = (*TagFormModel)(nil)
	_ tea.Model = (*HelpModel)(nil)
)

func TestModels_Init(t *testing.T) {
	store := loadedStore(t)

	tests := []struct {
		name      string
		model     tea.Model
		wantBlink bool
	}{
		{"browser", NewBrowserModel(store, false), false},
		{"commit", NewCommitModel(), true},
		{"delete", NewDeleteModel(store), false},
		{"form", NewTagFormModel(store), true},
		{"help", NewHelpModel(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.model.Init()
			if got := cmd != nil; got != tt.wantBlink {
				t.Fatalf("Init() returned cmd = %v, want cmd = %v", got, tt.wantBlink)
			}
			if tt.wantBlink && cmd() == nil {
				t.Error("Init() cmd produced no message")
			}
		})
	}
}
