package catalog

import (
	"errors"
	"fmt"

	"github.com/handiism/yeahmusic/internal/http"
)

// NetworkError is a failed catalog request. Message is the text to show
// the user: the server's response body when there is one.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Message returns the user-facing text of the failure.
func (e *NetworkError) Message() string {
	var se *http.StatusError
	if errors.As(e.Err, &se) && se.Body != "" {
		return se.Body
	}
	return e.Err.Error()
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &NetworkError{Op: op, Err: err}
}

// IsNetworkFailure reports whether err came from a catalog request.
func IsNetworkFailure(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// Message returns the user-facing text for any error: the verbatim server
// message for catalog failures, err.Error() otherwise.
func Message(err error) string {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Message()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
