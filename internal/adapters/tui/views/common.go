package views

import "tagmanager/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching

// SwitchToCreateMsg opens the form for a new tag in Category
type SwitchToCreateMsg struct {
	Category string
}

// SwitchToEditMsg opens the form prefilled with Tag
type SwitchToEditMsg struct {
	Tag domain.Tag
}

// SwitchToDeleteMsg asks for confirmation before deleting Tag
type SwitchToDeleteMsg struct {
	Tag domain.Tag
}

type SwitchToCommitMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

// Requests the app carries out against the store

// SubmitCreateMsg asks for Tag to be created in Category
type SubmitCreateMsg struct {
	Category domain.Category
	Tag      domain.Tag
}

// SubmitUpdateMsg asks for Patch to be applied to Key
type SubmitUpdateMsg struct {
	Key   domain.Key
	Patch domain.Patch
}

// SubmitDeleteMsg asks for Key to be deleted
type SubmitDeleteMsg struct {
	Key domain.Key
}

// SubmitCommitMsg asks for every pending change to be committed
type SubmitCommitMsg struct {
	Message string
}

// ReloadMsg asks for the collection to be fetched again
type ReloadMsg struct{}

// OpenEditorMsg asks for the tag's category file to be opened in $EDITOR
type OpenEditorMsg struct {
	Key domain.Key
}

// ToastMsg shows a transient message in the status area
type ToastMsg struct {
	Text  string
	IsErr bool
}
