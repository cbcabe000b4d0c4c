package application

import "errors"

var (
	// ErrComposing is returned when a message is sent while a reply is still being composed.
	ErrComposing           = errors.New("assistant is still composing a reply")
	ErrEmptyMessage        = errors.New("message must not be empty")
	ErrNoPlan              = errors.New("no plan has been proposed yet")
	ErrActionNotFound      = errors.New("action not found")
	ErrPlatformUnavailable = errors.New("platform client not configured")
	ErrUnsupportedAction   = errors.New("unsupported action type")
)
