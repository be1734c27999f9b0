package uri

import (
	"github.com/ghettovoice/urigrammar/internal/errorutil"
	"github.com/ghettovoice/urigrammar/internal/grammar"
)

// Error kinds returned by the parsers. Match them with [errors.Is].
const (
	// ErrEmptyInput is returned when parsing an empty input.
	ErrEmptyInput = grammar.ErrEmptyInput
	// ErrInvalidScheme is returned when the scheme is malformed or is not terminated by ":".
	ErrInvalidScheme = grammar.ErrInvalidScheme
	// ErrUnknownScheme is returned for a valid scheme outside of the well-known set
	// when the closed-universe policy is requested, see [Options.StrictSchemes] and [LookupScheme].
	ErrUnknownScheme = grammar.ErrUnknownScheme
	// ErrInvalidPercentEncoding is returned for a truncated or non-hex "%HH" triplet.
	ErrInvalidPercentEncoding = grammar.ErrInvalidPercentEncoding
	// ErrPortNotFound is returned when ":" after the host is not followed by a port number.
	ErrPortNotFound = grammar.ErrPortNotFound
	// ErrInvalidPort is returned when a port number does not fit into 16 bits.
	ErrInvalidPort = grammar.ErrInvalidPort
	// ErrInvalidURI is returned when the input has bytes left after the last URI component.
	ErrInvalidURI = grammar.ErrInvalidURI
	// ErrInvalidText is returned when a component is not valid UTF-8 text.
	ErrInvalidText = grammar.ErrInvalidText
)

// ErrInvalidArgument is returned when a method gets an argument it cannot work with, like a nil URI.
const ErrInvalidArgument = errorutil.ErrInvalidArgument
