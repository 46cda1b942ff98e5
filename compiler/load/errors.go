package load

import (
	"errors"
	"fmt"
)

// ErrInvalidModel indicates a snapshot that does not describe a valid model.
var ErrInvalidModel = errors.New("shapegen: invalid model")

// ModelError reports a snapshot that could not be turned into a model.
type ModelError struct {
	Shape   string // Shape id, if the error is local to one shape.
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		if msg == "" {
			msg = e.Cause.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Cause)
		}
	}
	if e.Shape != "" {
		return fmt.Sprintf("load: shape %s: %s", e.Shape, msg)
	}
	return "load: " + msg
}

// Unwrap returns the underlying error.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrInvalidModel.
func (e *ModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

func shapeError(id, format string, args ...any) *ModelError {
	return &ModelError{Shape: id, Message: fmt.Sprintf(format, args...)}
}

// IsModelError reports whether err is or wraps a ModelError.
func IsModelError(err error) bool {
	var e *ModelError
	return errors.As(err, &e)
}
