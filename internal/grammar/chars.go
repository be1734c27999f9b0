package grammar

// octetClass describes the grammar classes a byte belongs to.
//
//	ALPHA       = %x41-5A / %x61-7A
//	DIGIT       = %x30-39
//	HEXDIG      = DIGIT / "A" / "B" / "C" / "D" / "E" / "F"
//	unreserved  = ALPHA / DIGIT / "-" / "." / "_" / "~"
//	sub-delims  = "!" / "$" / "&" / "'" / "(" / ")" / "*" / "+" / "," / ";" / "="
//	scheme-char = ALPHA / DIGIT / "+" / "-" / "."
type octetClass uint8

const (
	octetAlpha octetClass = 1 << iota
	octetDigit
	octetHexdig
	octetUnreserved
	octetSubDelims
	octetScheme
)

var octets [256]octetClass

func init() {
	for i := range 256 {
		c := byte(i)
		var t octetClass
		switch {
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z':
			t |= octetAlpha | octetUnreserved | octetScheme
			if 'A' <= c && c <= 'F' || 'a' <= c && c <= 'f' {
				t |= octetHexdig
			}
		case '0' <= c && c <= '9':
			t |= octetDigit | octetHexdig | octetUnreserved | octetScheme
		case c == '-', c == '.':
			t |= octetUnreserved | octetScheme
		case c == '_', c == '~':
			t |= octetUnreserved
		}
		// sub-delims are range encoded: 0x21, 0x24, 0x26-0x2c, 0x3b, 0x3d
		if c == 0x21 || c == 0x24 || 0x26 <= c && c <= 0x2c || c == 0x3b || c == 0x3d {
			t |= octetSubDelims
		}
		if c == '+' {
			t |= octetScheme
		}
		octets[c] = t
	}
}

func IsAlpha(c byte) bool { return octets[c]&octetAlpha != 0 }

func IsDigit(c byte) bool { return octets[c]&octetDigit != 0 }

func IsHexdig(c byte) bool { return octets[c]&octetHexdig != 0 }

// IsUnreserved reports whether c is ALPHA / DIGIT / "-" / "." / "_" / "~".
func IsUnreserved(c byte) bool { return octets[c]&octetUnreserved != 0 }

// IsSubDelims reports whether c is one of "!$&'()*+,;=".
func IsSubDelims(c byte) bool { return octets[c]&octetSubDelims != 0 }

// IsSchemeChar reports whether c may follow the first letter of a scheme.
func IsSchemeChar(c byte) bool { return octets[c]&octetScheme != 0 }

// IsOpaque reports whether c is a non-ASCII byte.
// Such bytes are never classified, they are copied as is into text components.
func IsOpaque(c byte) bool { return c >= 0x80 }

// IsPchar reports whether c is a single-byte pchar, i.e. pchar without pct-encoded.
func IsPchar(c byte) bool { return octets[c]&(octetUnreserved|octetSubDelims) != 0 || c == ':' || c == '@' }

// IsRegNameChar reports whether c is a single-byte reg-name char.
func IsRegNameChar(c byte) bool { return octets[c]&(octetUnreserved|octetSubDelims) != 0 }

// IsUserinfoChar reports whether c is a single-byte userinfo char.
func IsUserinfoChar(c byte) bool { return IsRegNameChar(c) || c == ':' }

// IsQueryChar reports whether c is a single-byte query or fragment char.
func IsQueryChar(c byte) bool { return IsPchar(c) || c == '/' || c == '?' }

// ToLower returns the lowercase form of an ASCII letter, any other byte is returned as is.
func ToLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
