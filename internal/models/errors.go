package models

import "errors"

var (
	ErrInvalidType     = errors.New("invalid feedback type")
	ErrInvalidCategory = errors.New("invalid feedback category")
	ErrEmptyMessage    = errors.New("feedback message is empty")
	ErrUnknownUser     = errors.New("unknown user")
	ErrPersistence     = errors.New("persistence failure")
	ErrLastAdmin       = errors.New("cannot delete the last admin user")
	ErrEmailTaken      = errors.New("email already registered")
)
