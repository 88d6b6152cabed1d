// Package review drives the human review loop over generated letter variants.
package review

import (
	"fmt"
	"os"
	"os/exec"
)

// Editor opens text for human editing and returns the result.
type Editor interface {
	Edit(text string) (string, error)
}

// ExecEditor shells out to the user's editor with a tempfile round-trip.
type ExecEditor struct {
	// Command overrides the $EDITOR lookup when set.
	Command string
}

// fallbackEditors are tried in order when $EDITOR is unset.
var fallbackEditors = []string{"nano", "vim", "vi"}

// Edit writes text to a tempfile, opens the editor on it, and returns the
// saved contents. On any failure the original text is returned alongside the
// error so the caller never loses the letter.
func (e *ExecEditor) Edit(text string) (string, error) {
	command := e.Command
	if command == "" {
		command = detectEditor()
	}
	if command == "" {
		return text, fmt.Errorf("no editor available; set $EDITOR")
	}

	file, err := os.CreateTemp("", "letter-*.txt")
	if err != nil {
		return text, fmt.Errorf("failed to create edit buffer: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.WriteString(text); err != nil {
		file.Close()
		return text, fmt.Errorf("failed to write edit buffer: %w", err)
	}
	if err := file.Close(); err != nil {
		return text, fmt.Errorf("failed to flush edit buffer: %w", err)
	}

	cmd := exec.Command(command, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return text, fmt.Errorf("editor %s failed: %w", command, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return text, fmt.Errorf("failed to read edited letter: %w", err)
	}
	return string(edited), nil
}

func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	for _, candidate := range fallbackEditors {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
