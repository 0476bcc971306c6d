// Package transformer converts phone numbers between their model
// representation (phonenumber.Number) and the shapes form widgets submit: a
// formatted string for single text inputs, or a country/number pair for the
// country choice widget.
package transformer

import (
	"errors"
	"strings"
)

// ViewTransformer maps a model value to its view representation and back.
// Failures are reported as *TransformationFailedError.
type ViewTransformer interface {
	Transform(value any) (any, error)
	ReverseTransform(value any) (any, error)
}

// ErrTransformationFailed matches every *TransformationFailedError via
// errors.Is.
var ErrTransformationFailed = errors.New("transformer: transformation failed")

// TransformationFailedError carries the message surfaced to the form layer
// plus the underlying cause, when one exists.
type TransformationFailedError struct {
	Message string
	Cause   error
}

func (e *TransformationFailedError) Error() string {
	if e == nil {
		return ""
	}
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return ErrTransformationFailed.Error()
}

func (e *TransformationFailedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is lets errors.Is(err, ErrTransformationFailed) succeed for any failure.
func (e *TransformationFailedError) Is(target error) bool {
	return target == ErrTransformationFailed
}

const (
	msgExpectedNumber = "Expected a phone number."
	msgExpectedArray  = "Expected an array."
	msgInvalidCountry = "Invalid country."
)

func failed(message string, cause error) error {
	return &TransformationFailedError{Message: message, Cause: cause}
}

// parseFailed reports the numbering library's own message, as callers expect
// the reason the input was rejected rather than a generic string.
func parseFailed(err error) error {
	message := err.Error()
	if cause := errors.Unwrap(err); cause != nil {
		message = cause.Error()
	}
	return failed(message, err)
}
