package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/shapegen/shape"
)

// Sentinel errors for common failure cases.
var (
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("shapegen: missing configuration")
	// ErrUnsupportedConstraint indicates a constraint trait the generator
	// cannot represent on a shape.
	ErrUnsupportedConstraint = errors.New("shapegen: unsupported constraint trait")
	// ErrSymbolResolution indicates a symbol provider failure.
	ErrSymbolResolution = errors.New("shapegen: symbol resolution failed")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("shapegen: code generation failed")
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("shapegen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("shapegen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// ConstraintError reports a constraint trait that cannot be turned into a
// violation variant. It is fatal for the generation run.
type ConstraintError struct {
	Shape shape.ShapeID
	Kind  shape.Kind
	Trait string
}

// Error implements the error interface.
func (e *ConstraintError) Error() string {
	return fmt.Sprintf("shapegen: constraint trait %q is not supported on %s shape %s", e.Trait, e.Kind, e.Shape)
}

// Is reports whether the target matches ErrUnsupportedConstraint.
func (e *ConstraintError) Is(target error) bool {
	return target == ErrUnsupportedConstraint
}

// NewConstraintError creates a new ConstraintError.
func NewConstraintError(s *shape.Shape, trait string) *ConstraintError {
	return &ConstraintError{Shape: s.ID, Kind: s.Kind, Trait: trait}
}

// ResolutionError wraps a symbol provider failure for a shape.
type ResolutionError struct {
	Shape shape.ShapeID
	Cause error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("shapegen: cannot resolve symbol for %s: %s", e.Shape, e.Cause)
	}
	return fmt.Sprintf("shapegen: cannot resolve symbol for %s", e.Shape)
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrSymbolResolution.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrSymbolResolution
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "violation", "config", "operation", "write"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("shapegen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsConstraintError reports whether the error is a ConstraintError.
func IsConstraintError(err error) bool {
	var constraintErr *ConstraintError
	return errors.As(err, &constraintErr)
}

// IsResolutionError reports whether the error is a ResolutionError.
func IsResolutionError(err error) bool {
	var resErr *ResolutionError
	return errors.As(err, &resErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
