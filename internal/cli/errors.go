// Package cli provides shared configuration and utilities for the shapegen CLI.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/syssam/shapegen/compiler/gen"
	"github.com/syssam/shapegen/compiler/load"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitConfig  = 2
	ExitModel   = 3
)

// ExitError wraps an error with an exit code.
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

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	switch {
	case errors.Is(err, gen.ErrMissingConfig), errors.Is(err, gen.ErrUnsupportedConstraint):
		return ExitConfig
	case errors.Is(err, load.ErrInvalidModel):
		return ExitModel
	default:
		return ExitGeneral
	}
}

// ExitWithError prints the error and exits with the appropriate code.
func ExitWithError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(ExitCode(err))
}

// ConfigError creates an ExitError with ExitConfig code.
func ConfigError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitConfig, Message: msg, Err: err}
}

// ModelError creates an ExitError with ExitModel code.
func ModelError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitModel, Message: msg, Err: err}
}

// GeneralError creates an ExitError with ExitGeneral code.
func GeneralError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitGeneral, Message: msg, Err: err}
}
