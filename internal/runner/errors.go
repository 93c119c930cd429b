package runner

import "errors"

// ErrCheckPanic wraps a panic recovered from a check.
var ErrCheckPanic = errors.New("check panicked")
