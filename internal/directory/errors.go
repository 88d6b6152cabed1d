// Package directory loads and classifies the elected officials a letter can
// be addressed to.
package directory

import "fmt"

// DirectoryError represents a fatal failure to load the recipient directory.
// The pipeline cannot proceed without recipients.
type DirectoryError struct {
	Message string
	Cause   error
}

func (e *DirectoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("directory error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("directory error: %s", e.Message)
}

func (e *DirectoryError) Unwrap() error {
	return e.Cause
}
