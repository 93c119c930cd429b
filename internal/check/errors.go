package check

import (
	"errors"
	"fmt"
)

var (
	// ErrInconclusive marks a check that could not gather the data it needs.
	ErrInconclusive   = errors.New("inconclusive")
	ErrUnknownKind    = errors.New("unknown check kind")
	ErrIncompleteMeta = errors.New("check meta needs an id and title")
	ErrUncoveredKind  = errors.New("kind has no check in the battery")
)

func inconclusive(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInconclusive, fmt.Sprintf(format, args...))
}
