package session

import (
	"context"
	"fmt"
)

// unavailable is a Browser whose every call fails with the same cause.
type unavailable struct{ err error }

// Unavailable returns a Browser that fails every call with cause. It lets a
// run proceed, and report, when Chrome could not be started.
func Unavailable(cause error) Browser {
	return unavailable{err: fmt.Errorf("%w: %v", ErrUnavailable, cause)}
}

func (u unavailable) Navigate(context.Context, string) error         { return u.err }
func (u unavailable) SetViewport(context.Context, Viewport) error    { return u.err }
func (u unavailable) Evaluate(context.Context, string, any) error    { return u.err }
func (u unavailable) Location(context.Context) (string, error)       { return "", u.err }
func (u unavailable) HTML(context.Context) (string, error)           { return "", u.err }
func (u unavailable) Click(context.Context, string) error            { return u.err }
func (u unavailable) SetValue(context.Context, string, string) error { return u.err }
func (u unavailable) SendKeys(context.Context, string, string) error { return u.err }
func (u unavailable) Screenshot(context.Context) ([]byte, error)     { return nil, u.err }
func (u unavailable) ConsoleLogs(context.Context) ([]ConsoleEntry, error) {
	return nil, u.err
}
func (u unavailable) Close() error { return nil }
