package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for input handling.
var (
	// ErrInputNotFound indicates that the input file does not exist
	ErrInputNotFound = errors.New("input file not found")
)

// FormatError reports a JSON document whose top-level shape is neither a list
// nor an object holding an "articles" list.
type FormatError struct {
	Path string
}

// Error returns a message naming the two accepted shapes.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s must contain a list or {'articles': [...]}", e.Path)
}

// ParseError reports an input file that is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

// Error returns the wrapped decode failure message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("could not load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
