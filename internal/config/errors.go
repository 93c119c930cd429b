package config

import "errors"

var (
	ErrInvalidConfig   = errors.New("invalid config")
	ErrMissingRequired = errors.New("missing required setting")
)
