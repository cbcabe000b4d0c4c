package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/config"
	"github.com/felixgeelhaar/agenthub/pkg/application"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
	"github.com/felixgeelhaar/agenthub/pkg/platform"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	var idxErr *planning.TaskIndexError
	if errors.As(err, &idxErr) {
		return NewCLIError(
			idxErr.Error(),
			"Task numbers start at 1 in the plan panel",
			err,
		)
	}

	var nf *platform.NotFoundError
	if errors.As(err, &nf) {
		return NewCLIError(
			fmt.Sprintf("%s not found", nf.Kind),
			fmt.Sprintf("Run 'agenthub %s list' to see what exists", listCommandFor(nf.Kind)),
			err,
		)
	}

	var apiErr *platform.OpenAPIError
	if errors.As(err, &apiErr) {
		return NewCLIError("invalid OpenAPI document", "Check that the document has info.title and at least one path", err)
	}

	switch {
	case errors.Is(err, config.ErrInvalid):
		return NewCLIError("invalid configuration", "Run 'agenthub config show' to inspect the effective settings", err)
	case errors.Is(err, application.ErrNoPlan):
		return NewCLIError("no plan yet", "Describe the agent you want, for example: agenthub ask \"quero um agente de cobrança\"", err)
	case errors.Is(err, application.ErrEmptyMessage):
		return NewCLIError("empty message", "Pass the message as an argument", err)
	case errors.Is(err, application.ErrComposing):
		return NewCLIError("assistant is busy", "Wait for the current reply before sending another message", err)
	case errors.Is(err, platform.ErrInvalidRequest):
		return NewCLIError("invalid request", "Check the flags with --help", err)
	}

	return err
}

func listCommandFor(kind string) string {
	switch kind {
	case "memory":
		return "memory"
	case "tool":
		return "tools"
	case "deployment":
		return "deploy"
	default:
		return "agents"
	}
}
