package api

import (
	"errors"
	"fmt"
)

// ErrUnreachable is returned when the backend cannot be contacted at the
// transport level (connection refused, timeout, DNS failure).
var ErrUnreachable = errors.New("backend unreachable")

// Error is a non-2xx backend response. The backend reports failures as
// {"success": false, "message": "..."}; Message is empty when the body
// did not parse.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Message)
}

// Validation reports whether this is a structured client-side rejection
// whose message should be surfaced to the user as-is.
func (e *Error) Validation() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.Message != ""
}

// ServerFault reports a backend-side failure or a malformed error payload.
func (e *Error) ServerFault() bool {
	return e.StatusCode >= 500 || e.Message == ""
}

// UserMessage returns the message to show the user for any client error.
func UserMessage(err error) string {
	var backendErr *Error
	if errors.As(err, &backendErr) && backendErr.Validation() {
		return backendErr.Message
	}
	if errors.Is(err, ErrUnreachable) {
		return "Could not reach the store. Check that the backend is running, reachable and returns valid JSON."
	}
	return "Something went wrong. Please try again later"
}
