package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urigrammar/internal/constraints"
	"github.com/ghettovoice/urigrammar/internal/errorutil"
	"github.com/ghettovoice/urigrammar/internal/grammar"
	"github.com/ghettovoice/urigrammar/internal/ioutil"
	"github.com/ghettovoice/urigrammar/internal/log"
	"github.com/ghettovoice/urigrammar/internal/util"
)

// URI is a parsed or assembled absolute URI:
//
//	URI = scheme ":" hier-part [ "?" query ] [ "#" fragment ]
type URI struct {
	Scheme Scheme
	// Authority is nil when the URI has no "//" authority.
	Authority *Authority
	Path      string
	Query     Query
	Fragment  Fragment
}

// Options configures parsing.
// The zero value is ready to use.
type Options struct {
	// StrictSchemes rejects schemes outside of the well-known set with [ErrUnknownScheme].
	StrictSchemes bool
	// Logger receives debug records about failed parses. Defaults to a no-op logger.
	Logger *slog.Logger
}

func (o *Options) strict() bool { return o != nil && o.StrictSchemes }

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Noop
	}
	return o.Logger
}

// Parse parses the URI from the given input s (string or []byte) with default options.
func Parse[T constraints.Byteseq](s T) (*URI, error) {
	return errtrace.Wrap2(ParseWith(s, nil))
}

// ParseWith parses the URI from the given input s (string or []byte).
//
// Components are parsed in order: scheme, hier-part, query, fragment.
// The whole input must be consumed, otherwise the parse fails with [ErrInvalidURI].
func ParseWith[T constraints.Byteseq](s T, opts *Options) (*URI, error) {
	u, err := parse(s, opts.strict())
	if err != nil {
		opts.logger().Debug("parse failed", "input", log.StringValue(s), "error", err)
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

func parse[T constraints.Byteseq](s T, strict bool) (*URI, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(grammar.NewError(ErrEmptyInput, 0))
	}

	var (
		b   Builder
		pos int
		err error
	)

	var scheme Scheme
	if scheme, pos, err = parseScheme(s, pos, strict); err != nil {
		return nil, errtrace.Wrap(err)
	}
	b.Scheme(scheme)

	var hp HierPart
	if hp, pos, err = ParseHierPart(s, pos); err != nil {
		return nil, errtrace.Wrap(err)
	}
	b.HierPart(hp)

	var q Query
	if q, pos, err = ParseQuery(s, pos); err != nil {
		return nil, errtrace.Wrap(err)
	}
	b.Query(q)

	var f Fragment
	if f, pos, err = ParseFragment(s, pos); err != nil {
		return nil, errtrace.Wrap(err)
	}
	b.Fragment(f)

	if pos != len(s) {
		return nil, errtrace.Wrap(grammar.NewError(ErrInvalidURI, pos))
	}
	return b.Build(), nil
}

// Must returns u or panics if err is not nil.
// It is intended for initialization of package level variables with constant URIs.
func Must(u *URI, err error) *URI { return util.Must2(u, err) }

// HierPart returns the authority and path of the URI.
func (u *URI) HierPart() HierPart {
	if u == nil {
		return HierPart{}
	}
	return HierPart{Authority: u.Authority, Path: u.Path}
}

// Hostname returns the host text or an empty string when there is no authority.
func (u *URI) Hostname() string {
	if u == nil || u.Authority == nil {
		return ""
	}
	return u.Authority.Host.String()
}

// EffectivePort returns the explicit port or the implied default port of the scheme.
func (u *URI) EffectivePort() (Port, bool) {
	if u == nil {
		return Port{}, false
	}
	if u.Authority != nil && !u.Authority.Port.IsZero() {
		return u.Authority.Port, true
	}
	return u.Scheme.DefaultPort()
}

// RenderTo writes the URI to w.
func (u *URI) RenderTo(w io.Writer) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Strings(u.Scheme.Name(), ":")
	cw.Call(u.HierPart().RenderTo)
	if !u.Query.IsZero() {
		cw.Strings("?", u.Query.raw)
	}
	if !u.Fragment.IsZero() {
		cw.Strings("#", u.Fragment.raw)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the URI text.
func (u *URI) Render() string {
	if u == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// String returns the URI text.
func (u *URI) String() string { return u.Render() }

// Bytes returns the URI text as a new byte slice.
func (u *URI) Bytes() []byte { return []byte(u.Render()) }

// Format implements [fmt.Formatter].
//
// Verb "%s" renders the URI, "%+s" renders it directly into the state,
// "%q" renders the quoted URI, all other verbs print the struct.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
		return
	}
}

// Clone returns a deep copy of the URI.
func (u *URI) Clone() *URI {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.Authority = u.Authority.Clone()
	return &u2
}

// Equal compares the URI with another [URI] or *[URI].
// Scheme and registered name host are compared case-insensitively, other components byte by byte.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return u.Scheme.Equal(other.Scheme) &&
		u.Authority.Equal(other.Authority) &&
		u.Path == other.Path &&
		u.Query.Equal(other.Query) &&
		u.Fragment.Equal(other.Fragment)
}

// IsValid reports whether all URI components are syntactically valid.
func (u *URI) IsValid() bool { return u.Validate() == nil }

// Validate checks every URI component and returns all found problems joined.
func (u *URI) Validate() error {
	if u == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil URI"))
	}

	var errs []error
	if !u.Scheme.IsValid() {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidScheme, "%q", u.Scheme.Name()))
	}
	if u.Authority != nil {
		if !u.Authority.Userinfo.IsValid() {
			errs = append(errs, errorutil.NewWrapperError(ErrInvalidURI, "userinfo %q", u.Authority.Userinfo.raw))
		}
		if !u.Authority.Host.IsValid() {
			errs = append(errs, errorutil.NewWrapperError(ErrInvalidURI, "%s host %q", u.Authority.Host.kind, u.Authority.Host.text))
		}
		if !u.Authority.Port.IsValid() {
			errs = append(errs, errorutil.NewWrapperError(ErrInvalidPort, "%q", u.Authority.Port.digits))
		}
	}
	if !u.isValidPath() {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidURI, "path %q", u.Path))
	}
	if !u.Query.IsValid() {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidURI, "query %q", u.Query.raw))
	}
	if !u.Fragment.IsValid() {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidURI, "fragment %q", u.Fragment.raw))
	}
	return errtrace.Wrap(errorutil.JoinPrefix("invalid URI components:", errs...))
}

func (u *URI) isValidPath() bool {
	if u.Authority != nil {
		p, end, err := ParsePath(u.Path, 0)
		return err == nil && end == len(u.Path) && p == u.Path
	}
	// a path without authority must not look like one
	if len(u.Path) > 1 && u.Path[0] == '/' && u.Path[1] == '/' {
		return false
	}
	p, end, err := parseOpaquePath(u.Path, 0)
	return err == nil && end == len(u.Path) && p == u.Path
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	return u.Bytes(), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
