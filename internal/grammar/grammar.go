// Package grammar implements the RFC 3986 character classes and the low level
// run scanners used by the uri package.
//
// Scanners work over an immutable input (string or []byte) and a position.
// Each scanner returns the position one byte past the last consumed byte.
// A scanner that matches nothing returns the position it was given.
package grammar

//go:generate go tool errtrace -w .

import "github.com/ghettovoice/urigrammar/internal/errorutil"

// Error is a grammar error sentinel.
type Error string

func (e Error) Error() string { return string(e) }

// Grammar marks the error as a grammar error, see [errorutil.IsGrammarErr].
func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput             Error = "empty input"
	ErrInvalidScheme          Error = "invalid scheme"
	ErrUnknownScheme          Error = "unknown scheme"
	ErrInvalidPercentEncoding Error = "invalid percent encoding"
	ErrPortNotFound           Error = "port not found"
	ErrInvalidPort            Error = "invalid port"
	ErrInvalidURI             Error = "invalid URI"
	ErrInvalidText            Error = "invalid text"
)

// NewError wraps the sentinel with the offset of the offending byte.
func NewError(sentinel Error, pos int) error {
	return errorutil.NewWrapperError(sentinel, "offset %d", pos) //errtrace:skip
}
