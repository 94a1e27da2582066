package remote

import "fmt"

// StatusError is returned when the mission service answers with a non-2xx status.
type StatusError struct {
	Op         string // "Upload", "Request" or "Reset"
	StatusCode int
	Message    string // server-provided description, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed: %d (%s)", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s failed: %d", e.Op, e.StatusCode)
}

// TransportError wraps failures that happen before a response is received.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
