package domain

import "errors"

// ErrSessionClosed is returned when an operation is posted to a session whose loop has stopped.
var ErrSessionClosed = errors.New("session closed")

// ErrTemplateNotFound is returned when a starter template name is unknown.
var ErrTemplateNotFound = errors.New("template not found")

// ErrNoValue is reported when the parser returns neither a value nor an error.
var ErrNoValue = errors.New("parser produced no value")

// ParseFailure is the fault reported by the markup parser boundary.
// The pipeline converts it into a Failed result; it is never returned to callers.
type ParseFailure struct {
	Message string
	Err     error
}

// NewParseFailure wraps a parser error.
func NewParseFailure(err error) *ParseFailure {
	return &ParseFailure{Message: err.Error(), Err: err}
}

func (e *ParseFailure) Error() string {
	return e.Message
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}
