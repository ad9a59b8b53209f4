package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparsedJunk is wrapped by the error returned when a full-input
	// parse leaves characters behind.
	ErrUnparsedJunk = errors.New("unparsed junk at the end of input")
	// ErrTooDeep is wrapped by the error returned when the input nests
	// deeper than the parser allows.
	ErrTooDeep = errors.New("nesting is too deep")
)

// ParseError is a malformed-input error. Offset is a byte offset into the
// parsed text.
type ParseError struct {
	Message string
	Offset  int

	err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Message, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// NewParseError wraps a sentinel error with an offset.
func NewParseError(err error, offset int) *ParseError {
	return &ParseError{Message: err.Error(), Offset: offset, err: err}
}
