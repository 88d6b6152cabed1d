// Package assembly turns a reviewed session into the final output artifacts.
package assembly

import "fmt"

// AssemblyError means no artifacts could be produced, which only happens
// when nothing was accepted.
type AssemblyError struct {
	Message string
	Cause   error
}

func (e *AssemblyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("assembly error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("assembly error: %s", e.Message)
}

func (e *AssemblyError) Unwrap() error {
	return e.Cause
}
