package importer

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrUnsupportedVersion indicates an openapi version other than 3.x.
	ErrUnsupportedVersion = errors.New("unsupported OpenAPI version")

	// ErrRefResolution indicates reference resolution produced no document.
	ErrRefResolution = errors.New("reference resolution failed")

	// ErrMalformedDocument indicates a structural problem in the document.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrInvalidCollection indicates the produced collection failed schema
	// validation.
	ErrInvalidCollection = errors.New("invalid collection")
)

// ImportError is returned for every failed import. Kind is one of the
// sentinel errors above.
type ImportError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

func (e *ImportError) Is(target error) bool {
	return e.Kind == target
}

func newError(kind error, msg string, cause error) *ImportError {
	return &ImportError{Kind: kind, Message: msg, Cause: cause}
}
