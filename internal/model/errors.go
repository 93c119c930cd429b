package model

import "errors"

var (
	ErrEmptyID    = errors.New("finding id is empty")
	ErrEmptyTitle = errors.New("finding title is empty")
)
