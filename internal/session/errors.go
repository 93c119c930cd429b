package session

import (
	"errors"
	"fmt"
)

var (
	ErrClosed      = errors.New("session closed")
	ErrUnavailable = errors.New("browser unavailable")
)

// NavigationError reports a failed page load.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }
