package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable wraps transport failures: the request never produced a response.
	ErrUnavailable = errors.New("shop API unavailable")
	// ErrDecode is returned when a response body is not a valid envelope.
	ErrDecode = errors.New("malformed shop API response")
)

// RejectedError is a well-formed response carrying success=false.
type RejectedError struct {
	Op      string
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s rejected (status %d)", e.Op, e.Status)
	}
	return fmt.Sprintf("%s rejected: %s", e.Op, e.Message)
}

// RejectionMessage returns the server-supplied message of a rejection.
// ok is false when err is not a rejection at all.
func RejectionMessage(err error) (msg string, ok bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message, true
	}
	return "", false
}
