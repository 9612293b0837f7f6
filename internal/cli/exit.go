package cli

import (
	"errors"
	"fmt"
)

// Exit codes shared by every command
const (
	ExitSuccess       = 0
	ExitFailure       = 1
	ExitSolved        = 10
	ExitUnsatisfiable = 20
)

// ExitError represents an error with a specific exit code
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not an ExitError map to ExitFailure
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
