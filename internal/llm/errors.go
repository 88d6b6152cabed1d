package llm

import "fmt"

// ServiceError represents a failure talking to the generation service
// (network, auth, rate limit, or an unusable response). It is recoverable at
// the recipient level: callers retry or skip the current recipient, never the
// whole session.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation service error: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
