package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"tagmanager/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	lookupEnv func(string) string
	lookPath  func(string) (string, error)
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookupEnv: os.Getenv, lookPath: exec.LookPath}
}

// OpenFile opens a file in the user's preferred editor and waits for it to exit
func (o *Opener) OpenFile(path string, line int) error {
	cmd, err := o.Command(path, line)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor.
// $EDITOR may carry arguments (e.g. "code --wait").
func (o *Opener) Command(path string, line int) (*exec.Cmd, error) {
	fields := strings.Fields(o.findEditor())
	if len(fields) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	args := append(fields[1:], positionArgs(fields[0], path, line)...)
	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// positionArgs builds the file arguments, jumping to line for editors that
// understand it
func positionArgs(editor, path string, line int) []string {
	if line <= 0 {
		return []string{path}
	}
	switch filepath.Base(editor) {
	case "vi", "vim", "nvim", "nano", "emacs", "hx", "micro", "kak":
		return []string{fmt.Sprintf("+%d", line), path}
	case "code", "codium", "cursor", "zed":
		return []string{"--goto", fmt.Sprintf("%s:%d", path, line)}
	case "subl":
		return []string{fmt.Sprintf("%s:%d", path, line)}
	default:
		return []string{path}
	}
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if editor := o.lookupEnv("EDITOR"); editor != "" {
		return editor
	}
	if visual := o.lookupEnv("VISUAL"); visual != "" {
		return visual
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(editor); err == nil {
			return path
		}
	}
	return ""
}
