package uri

import (
	"fmt"
	"strconv"
	"sync"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urigrammar/internal/constraints"
	"github.com/ghettovoice/urigrammar/internal/errorutil"
	"github.com/ghettovoice/urigrammar/internal/grammar"
	"github.com/ghettovoice/urigrammar/internal/util"
)

// SchemeTag identifies a well-known scheme.
type SchemeTag uint8

const (
	// SchemeGeneric tags any scheme outside of the well-known set.
	SchemeGeneric SchemeTag = iota
	SchemeHTTP
	SchemeHTTPS
	SchemeWS
	SchemeWSS
	SchemeFTP
	SchemeFile
	SchemeMailto
	SchemeSIP
	SchemeSIPS
	SchemeTel
	SchemeURN
	SchemeLDAP
)

type schemeInfo struct {
	name string
	port string
}

var wellKnownSchemes = [...]schemeInfo{
	SchemeGeneric: {},
	SchemeHTTP:    {"http", "80"},
	SchemeHTTPS:   {"https", "443"},
	SchemeWS:      {"ws", "80"},
	SchemeWSS:     {"wss", "443"},
	SchemeFTP:     {"ftp", "21"},
	SchemeFile:    {"file", ""},
	SchemeMailto:  {"mailto", ""},
	SchemeSIP:     {"sip", "5060"},
	SchemeSIPS:    {"sips", "5061"},
	SchemeTel:     {"tel", ""},
	SchemeURN:     {"urn", ""},
	SchemeLDAP:    {"ldap", "389"},
}

// String returns the scheme literal of the tag, or "generic" for [SchemeGeneric].
func (t SchemeTag) String() string {
	if t == SchemeGeneric {
		return "generic"
	}
	if int(t) < len(wellKnownSchemes) {
		return wellKnownSchemes[t].name
	}
	return "SchemeTag(" + strconv.Itoa(int(t)) + ")"
}

// schemeTrie is built on first use and is read-only afterwards.
var schemeTrie = sync.OnceValue(func() *grammar.Trie[SchemeTag] {
	t := grammar.NewTrie[SchemeTag](nil)
	for tag, info := range wellKnownSchemes {
		if info.name != "" {
			t.Insert(info.name, SchemeTag(tag))
		}
	}
	return t
})

// Scheme is either one of the well-known schemes or a generic lowercase scheme name.
// The zero value is an empty scheme and is not valid.
type Scheme struct {
	tag  SchemeTag
	name string // set for generic schemes only
}

// KnownScheme returns the well-known scheme for the tag.
// It panics on [SchemeGeneric] and unknown tags.
func KnownScheme(tag SchemeTag) Scheme {
	if tag == SchemeGeneric || int(tag) >= len(wellKnownSchemes) {
		panic(fmt.Errorf("scheme tag %d is not a well-known scheme", tag))
	}
	return Scheme{tag: tag}
}

// NewScheme returns a scheme by name.
// Well-known names yield the tagged scheme, any other name is kept as lowercase generic scheme.
// The name is not validated, see [Scheme.IsValid].
func NewScheme(name string) Scheme {
	if tag, ok := schemeTrie().Lookup(name); ok {
		return Scheme{tag: tag}
	}
	return Scheme{name: util.LCase(name)}
}

// LookupScheme classifies the name against the well-known set only.
// It fails with [ErrUnknownScheme] when the name is not well-known.
func LookupScheme(name string) (Scheme, error) {
	tag, ok := schemeTrie().Lookup(name)
	if !ok {
		return Scheme{}, errtrace.Wrap(newUnknownSchemeErr(name))
	}
	return Scheme{tag: tag}, nil
}

func newUnknownSchemeErr(name string) error {
	return errorutil.NewWrapperError(ErrUnknownScheme, "%q", name) //errtrace:skip
}

// SchemeByPort returns the first well-known scheme whose default port is p.
func SchemeByPort(p Port) (Scheme, bool) {
	if p.IsZero() {
		return Scheme{}, false
	}
	for tag, info := range wellKnownSchemes {
		if info.port != "" && info.port == p.digits {
			return Scheme{tag: SchemeTag(tag)}, true
		}
	}
	return Scheme{}, false
}

// Tag returns the well-known tag or [SchemeGeneric].
func (s Scheme) Tag() SchemeTag { return s.tag }

// IsKnown reports whether the scheme belongs to the well-known set.
func (s Scheme) IsKnown() bool { return s.tag != SchemeGeneric }

// IsZero reports whether the scheme is empty.
func (s Scheme) IsZero() bool { return s.tag == SchemeGeneric && s.name == "" }

// Name returns the lowercase scheme name.
func (s Scheme) Name() string {
	if s.tag != SchemeGeneric {
		return wellKnownSchemes[s.tag].name
	}
	return s.name
}

// String returns the lowercase scheme name.
func (s Scheme) String() string { return s.Name() }

// DefaultPort returns the implied port of a well-known scheme.
func (s Scheme) DefaultPort() (Port, bool) {
	if s.tag == SchemeGeneric || wellKnownSchemes[s.tag].port == "" {
		return Port{}, false
	}
	return Port{digits: wellKnownSchemes[s.tag].port, implied: true}, true
}

// IsValid reports whether the scheme name matches the scheme grammar.
func (s Scheme) IsValid() bool {
	if s.tag != SchemeGeneric {
		return true
	}
	return s.name != "" && grammar.ScanScheme(s.name, 0) == len(s.name)
}

// Equal compares the scheme with another [Scheme] or *[Scheme].
func (s Scheme) Equal(val any) bool {
	var other Scheme
	switch v := val.(type) {
	case Scheme:
		other = v
	case *Scheme:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return s.tag == other.tag && s.name == other.name
}

// Format implements [fmt.Formatter].
func (s Scheme) Format(f fmt.State, verb rune) {
	switch verb {
	case 'q':
		fmt.Fprint(f, strconv.Quote(s.String()))
	case 'v':
		if f.Flag('#') {
			fmt.Fprintf(f, "uri.Scheme{tag:%d, name:%q}", s.tag, s.Name())
			return
		}
		fallthrough
	default:
		fmt.Fprint(f, s.String())
	}
}

// ParseScheme parses the scheme at pos, including the terminating ":".
//
// The scan runs while bytes match the scheme grammar and must stop exactly on ":",
// otherwise it fails with [ErrInvalidScheme]. Names outside of the well-known set
// are kept as generic schemes. On success the returned position is one past the ":".
func ParseScheme[T constraints.Byteseq](s T, pos int) (Scheme, int, error) {
	return errtrace.Wrap3(parseScheme(s, pos, false))
}

func parseScheme[T constraints.Byteseq](s T, pos int, strict bool) (Scheme, int, error) {
	end := grammar.ScanScheme(s, pos)
	if end == pos || end >= len(s) || s[end] != ':' {
		return Scheme{}, pos, errtrace.Wrap(grammar.NewError(ErrInvalidScheme, end))
	}

	name := string(s[pos:end])
	if tag, ok := schemeTrie().Lookup(name); ok {
		return Scheme{tag: tag}, end + 1, nil
	}
	if strict {
		return Scheme{}, pos, errtrace.Wrap(newUnknownSchemeErr(name))
	}
	return Scheme{name: util.LCase(name)}, end + 1, nil
}
