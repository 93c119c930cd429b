package httpclient

import "errors"

var (
	ErrTimeout = errors.New("probe timed out")
	ErrBadURL  = errors.New("invalid probe URL")
)
