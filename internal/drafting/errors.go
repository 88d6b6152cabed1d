// Package drafting produces the base advocacy letter from an issue brief.
package drafting

import "fmt"

// DraftError indicates the model's letter could not be parsed into the
// required sections. Callers may retry with adjusted style settings.
type DraftError struct {
	Message string
	Cause   error
}

func (e *DraftError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("draft error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("draft error: %s", e.Message)
}

func (e *DraftError) Unwrap() error {
	return e.Cause
}
