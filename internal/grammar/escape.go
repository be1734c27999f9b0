package grammar

import (
	"bytes"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urigrammar/internal/constraints"
)

// ScanPctEncoded scans a single pct-encoded triplet "%" HEXDIG HEXDIG at pos.
//
// If s[pos] is not "%", it returns pos and nil error.
// If the triplet is truncated or not hex, it fails with [ErrInvalidPercentEncoding].
func ScanPctEncoded[T constraints.Byteseq](s T, pos int) (int, error) {
	if pos >= len(s) || s[pos] != '%' {
		return pos, nil
	}
	if pos+2 >= len(s) || !IsHexdig(s[pos+1]) || !IsHexdig(s[pos+2]) {
		return pos, errtrace.Wrap(NewError(ErrInvalidPercentEncoding, pos))
	}
	return pos + 3, nil
}

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
// Malformed triplets are copied as is.
func Unescape[T constraints.Byteseq](s T) T {
	if len(s) == 0 || bytes.IndexByte([]byte(s), '%') < 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && IsHexdig(s[i+1]) && IsHexdig(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes s by replacing each char matched by shouldEscape callback to the hex form "% HEXDIG HEXDIG".
// Already encoded triplets are kept. Nil callback escapes everything except unreserved chars.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsUnreserved(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '%' && i+2 < len(s) && IsHexdig(s[i+1]) && IsHexdig(s[i+2]):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
		case shouldEscape(s[i]):
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

const upperhex = "0123456789ABCDEF"

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
