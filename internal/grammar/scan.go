package grammar

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/urigrammar/internal/constraints"
)

// scanRun consumes the longest run of bytes accepted by accept.
// When pct is set, pct-encoded triplets are part of the run and a malformed one fails the whole run.
func scanRun[T constraints.Byteseq](s T, pos int, accept func(byte) bool, pct bool) (int, error) {
	i := pos
	for i < len(s) {
		c := s[i]
		if pct && c == '%' {
			next, err := ScanPctEncoded(s, i)
			if err != nil {
				return pos, errtrace.Wrap(err)
			}
			i = next
			continue
		}
		if !accept(c) {
			break
		}
		i++
	}
	return i, nil
}

func isPcharOrOpaque(c byte) bool { return IsPchar(c) || IsOpaque(c) }

func isUserinfoCharOrOpaque(c byte) bool { return IsUserinfoChar(c) || IsOpaque(c) }

func isUnreservedOrOpaque(c byte) bool { return IsUnreserved(c) || IsOpaque(c) }

func isQueryCharOrOpaque(c byte) bool { return IsQueryChar(c) || IsOpaque(c) }

// ScanPchar scans a run of pchar:
//
//	pchar = unreserved / pct-encoded / sub-delims / ":" / "@"
func ScanPchar[T constraints.Byteseq](s T, pos int) (int, error) {
	return errtrace.Wrap2(scanRun(s, pos, IsPchar, true))
}

// ScanSegment scans a run of pchar and non-ASCII bytes.
func ScanSegment[T constraints.Byteseq](s T, pos int) (int, error) {
	return errtrace.Wrap2(scanRun(s, pos, isPcharOrOpaque, true))
}

// ScanUnreserved scans a run of unreserved and non-ASCII bytes.
func ScanUnreserved[T constraints.Byteseq](s T, pos int) int {
	i, _ := scanRun(s, pos, isUnreservedOrOpaque, false)
	return i
}

// ScanUserinfo scans a run of userinfo bytes:
//
//	userinfo = *( unreserved / pct-encoded / sub-delims / ":" )
func ScanUserinfo[T constraints.Byteseq](s T, pos int) (int, error) {
	return errtrace.Wrap2(scanRun(s, pos, isUserinfoCharOrOpaque, true))
}

// ScanRegName scans a run of registered name bytes:
//
//	reg-name = *( unreserved / pct-encoded / sub-delims )
func ScanRegName[T constraints.Byteseq](s T, pos int) (int, error) {
	return errtrace.Wrap2(scanRun(s, pos, IsRegNameChar, true))
}

// ScanQuery scans a run of query or fragment bytes:
//
//	query    = *( pchar / "/" / "?" )
//	fragment = *( pchar / "/" / "?" )
func ScanQuery[T constraints.Byteseq](s T, pos int) (int, error) {
	return errtrace.Wrap2(scanRun(s, pos, isQueryCharOrOpaque, true))
}

// ScanNumber scans a decimal number without leading zeros, "0" alone is not a number either.
//
//	number = %x31-39 *DIGIT
func ScanNumber[T constraints.Byteseq](s T, pos int) int {
	if pos >= len(s) || s[pos] < '1' || s[pos] > '9' {
		return pos
	}
	i := pos + 1
	for i < len(s) && IsDigit(s[i]) {
		i++
	}
	return i
}

// ScanScheme scans a scheme name:
//
//	scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
func ScanScheme[T constraints.Byteseq](s T, pos int) int {
	if pos >= len(s) || !IsAlpha(s[pos]) {
		return pos
	}
	i := pos + 1
	for i < len(s) && IsSchemeChar(s[i]) {
		i++
	}
	return i
}

const (
	minIPv4Len = len("0.0.0.0")
	maxIPv4Len = len("255.255.255.255")
)

// ScanIPv4 scans an IPv4 literal:
//
//	IPv4address = dec-octet "." dec-octet "." dec-octet "." dec-octet
//	dec-octet   = DIGIT                 ; 0-9
//	            / %x31-39 DIGIT         ; 10-99
//	            / "1" 2DIGIT            ; 100-199
//	            / "2" %x30-34 DIGIT     ; 200-249
//	            / "25" %x30-35          ; 250-255
//
// The candidate is the longest run of digits and dots at pos.
// The literal is rejected when the candidate is followed by a reg-name byte,
// so that "1.2.3.4x" is left to the reg-name rule.
// On rejection pos is returned unchanged.
func ScanIPv4[T constraints.Byteseq](s T, pos int) (int, bool) {
	end := pos
	for end < len(s) && (IsDigit(s[end]) || s[end] == '.') {
		end++
	}
	if n := end - pos; n < minIPv4Len || n > maxIPv4Len {
		return pos, false
	}
	if end < len(s) && (IsRegNameChar(s[end]) || s[end] == '%') {
		return pos, false
	}

	var octets int
	start := pos
	for i := pos; i <= end; i++ {
		if i < end && s[i] != '.' {
			continue
		}
		if !isDecOctet(s[start:i]) {
			return pos, false
		}
		octets++
		start = i + 1
	}
	if octets != 4 {
		return pos, false
	}
	return end, true
}

func isDecOctet[T constraints.Byteseq](s T) bool {
	switch len(s) {
	case 1:
		return IsDigit(s[0])
	case 2:
		return '1' <= s[0] && s[0] <= '9' && IsDigit(s[1])
	case 3:
		switch s[0] {
		case '1':
			return IsDigit(s[1]) && IsDigit(s[2])
		case '2':
			switch {
			case '0' <= s[1] && s[1] <= '4':
				return IsDigit(s[2])
			case s[1] == '5':
				return '0' <= s[2] && s[2] <= '5'
			}
		}
	}
	return false
}
