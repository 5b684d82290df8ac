package ports

import "os/exec"

// EditorOpener defines the interface for opening tag files in an external editor
type EditorOpener interface {
	// OpenFile opens path in the user's editor, positioned at line when line > 0
	OpenFile(path string, line int) error

	// Command returns the editor process without starting it, for
	// bubbletea's ExecProcess
	Command(path string, line int) (*exec.Cmd, error)
}
