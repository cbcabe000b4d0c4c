package sdk

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent is returned when a tool result contains no content items.
	ErrNoContent = errors.New("agenthub: empty tool result")
	// ErrIncompatible is wrapped by Compatible when the server speaks a
	// schema major version this package does not.
	ErrIncompatible = errors.New("agenthub: incompatible schema")
)

// ToolError is a tool call that completed with an error result. The
// server already turned it into user-facing text, so retrying is pointless.
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("agenthub: tool %s: %s", e.Tool, e.Message)
}
