package uri

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urigrammar/internal/constraints"
	"github.com/ghettovoice/urigrammar/internal/grammar"
	"github.com/ghettovoice/urigrammar/internal/ioutil"
	"github.com/ghettovoice/urigrammar/internal/util"
)

// HierPart is the part between the scheme and the query:
//
//	hier-part = "//" authority path-abempty
//	          / path-absolute
//	          / path-rootless
//	          / path-empty
type HierPart struct {
	// Authority is nil when the hier-part does not start with "//".
	Authority *Authority
	Path      string
}

// RenderTo writes the hier-part.
func (hp HierPart) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if hp.Authority != nil {
		cw.Strings("//")
		cw.Call(hp.Authority.RenderTo)
	}
	cw.Strings(hp.Path)
	return errtrace.Wrap2(cw.Result())
}

// String returns the hier-part text.
func (hp HierPart) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hp.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// Clone returns a deep copy of the hier-part.
func (hp HierPart) Clone() HierPart {
	hp.Authority = hp.Authority.Clone()
	return hp
}

// Equal compares the hier-part with another [HierPart] or *[HierPart].
func (hp HierPart) Equal(val any) bool {
	var other HierPart
	switch v := val.(type) {
	case HierPart:
		other = v
	case *HierPart:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return hp.Path == other.Path && hp.Authority.Equal(other.Authority)
}

// ParseHierPart parses the hier-part at pos, right after the scheme ":".
//
// If the next two bytes are "//", the authority and an authority-form path follow,
// see [ParseAuthority] and [ParsePath]. Otherwise the path is parsed as
// a rootless or absolute path of pchar segments.
func ParseHierPart[T constraints.Byteseq](s T, pos int) (HierPart, int, error) {
	var (
		hp  HierPart
		err error
	)
	if pos+1 < len(s) && s[pos] == '/' && s[pos+1] == '/' {
		var auth Authority
		if auth, pos, err = ParseAuthority(s, pos+2); err != nil {
			return HierPart{}, pos, errtrace.Wrap(err)
		}
		hp.Authority = &auth
		if hp.Path, pos, err = ParsePath(s, pos); err != nil {
			return HierPart{}, pos, errtrace.Wrap(err)
		}
		return hp, pos, nil
	}

	if hp.Path, pos, err = parseOpaquePath(s, pos); err != nil {
		return HierPart{}, pos, errtrace.Wrap(err)
	}
	return hp, pos, nil
}

// ParsePath parses the path that follows an authority.
// Each segment starts with "/" and holds unreserved or non-ASCII bytes only,
// empty segments are kept as is.
func ParsePath[T constraints.Byteseq](s T, pos int) (string, int, error) {
	start := pos
	for pos < len(s) && s[pos] == '/' {
		pos = grammar.ScanUnreserved(s, pos+1)
	}
	if pos == start {
		return "", pos, nil
	}
	p, err := text(s, start, pos)
	if err != nil {
		return "", start, errtrace.Wrap(err)
	}
	return p, pos, nil
}

// parseOpaquePath parses path-absolute, path-rootless or path-empty:
//
//	path-absolute = "/" [ segment-nz *( "/" segment ) ]
//	path-rootless = segment-nz *( "/" segment )
func parseOpaquePath[T constraints.Byteseq](s T, pos int) (string, int, error) {
	start := pos
	end, err := grammar.ScanSegment(s, pos)
	if err != nil {
		return "", start, errtrace.Wrap(err)
	}
	for end < len(s) && s[end] == '/' {
		if end, err = grammar.ScanSegment(s, end+1); err != nil {
			return "", start, errtrace.Wrap(err)
		}
	}
	if end == start {
		return "", start, nil
	}
	p, err := text(s, start, end)
	if err != nil {
		return "", start, errtrace.Wrap(err)
	}
	return p, end, nil
}

// Query is the optional query component without the leading "?".
// The zero value means no query, [NewQuery] with an empty string gives an empty one.
type Query struct {
	raw string
	set bool
}

// NewQuery returns a present query with the raw, already escaped text.
func NewQuery(raw string) Query { return Query{raw: raw, set: true} }

// IsZero reports whether the query is absent.
func (q Query) IsZero() bool { return !q.set }

// String returns the raw query text.
func (q Query) String() string { return q.raw }

// Values parses the query as "application/x-www-form-urlencoded" pairs.
func (q Query) Values() (url.Values, error) {
	return errtrace.Wrap2(url.ParseQuery(q.raw))
}

// IsValid reports whether the query is absent or matches the query grammar.
func (q Query) IsValid() bool { return !q.set || isQueryText(q.raw) }

// Equal compares the query with another [Query] or *[Query].
func (q Query) Equal(val any) bool {
	var other Query
	switch v := val.(type) {
	case Query:
		other = v
	case *Query:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return q.set == other.set && q.raw == other.raw
}

// Format implements [fmt.Formatter].
func (q Query) Format(f fmt.State, verb rune) { formatOptional(f, verb, "Query", q.raw, q.set) }

// Fragment is the optional fragment component without the leading "#".
// The zero value means no fragment, [NewFragment] with an empty string gives an empty one.
type Fragment struct {
	raw string
	set bool
}

// NewFragment returns a present fragment with the raw, already escaped text.
func NewFragment(raw string) Fragment { return Fragment{raw: raw, set: true} }

// IsZero reports whether the fragment is absent.
func (f Fragment) IsZero() bool { return !f.set }

// String returns the raw fragment text.
func (f Fragment) String() string { return f.raw }

// Unescaped returns the decoded fragment text.
func (f Fragment) Unescaped() string { return grammar.Unescape(f.raw) }

// IsValid reports whether the fragment is absent or matches the fragment grammar.
func (f Fragment) IsValid() bool { return !f.set || isQueryText(f.raw) }

// Equal compares the fragment with another [Fragment] or *[Fragment].
func (f Fragment) Equal(val any) bool {
	var other Fragment
	switch v := val.(type) {
	case Fragment:
		other = v
	case *Fragment:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return f.set == other.set && f.raw == other.raw
}

// Format implements [fmt.Formatter].
func (f Fragment) Format(s fmt.State, verb rune) {
	formatOptional(s, verb, "Fragment", f.raw, f.set)
}

func formatOptional(f fmt.State, verb rune, typ, raw string, set bool) {
	switch verb {
	case 'q':
		fmt.Fprint(f, strconv.Quote(raw))
	case 'v':
		if f.Flag('#') {
			if !set {
				fmt.Fprintf(f, "uri.%s{}", typ)
				return
			}
			fmt.Fprintf(f, "uri.%s{%q}", typ, raw)
			return
		}
		fallthrough
	default:
		fmt.Fprint(f, raw)
	}
}

func isQueryText(s string) bool {
	end, err := grammar.ScanQuery(s, 0)
	return err == nil && end == len(s)
}

// ParseQuery parses "?" and the query at pos.
// If there is no "?" at pos, it returns the zero [Query] and pos unchanged.
func ParseQuery[T constraints.Byteseq](s T, pos int) (Query, int, error) {
	raw, end, ok, err := parseDelimited(s, pos, '?')
	if err != nil || !ok {
		return Query{}, pos, errtrace.Wrap(err)
	}
	return NewQuery(raw), end, nil
}

// ParseFragment parses "#" and the fragment at pos.
// If there is no "#" at pos, it returns the zero [Fragment] and pos unchanged.
func ParseFragment[T constraints.Byteseq](s T, pos int) (Fragment, int, error) {
	raw, end, ok, err := parseDelimited(s, pos, '#')
	if err != nil || !ok {
		return Fragment{}, pos, errtrace.Wrap(err)
	}
	return NewFragment(raw), end, nil
}

func parseDelimited[T constraints.Byteseq](s T, pos int, delim byte) (string, int, bool, error) {
	if pos >= len(s) || s[pos] != delim {
		return "", pos, false, nil
	}
	end, err := grammar.ScanQuery(s, pos+1)
	if err != nil {
		return "", pos, false, errtrace.Wrap(err)
	}
	raw, err := text(s, pos+1, end)
	if err != nil {
		return "", pos, false, errtrace.Wrap(err)
	}
	return raw, end, true, nil
}
