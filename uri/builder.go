package uri

import (
	"errors"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urigrammar/internal/errorutil"
)

var errNoScheme = errors.New("URI builder: scheme is not set")

// Builder accumulates URI components and assembles them into a [URI].
// [Parse] fills a Builder in grammar order, it can also be filled by hand.
//
// The zero value is an empty builder.
type Builder struct {
	scheme    Scheme
	hasScheme bool
	hp        HierPart
	query     Query
	fragment  Fragment
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder { return &Builder{} }

// Scheme sets the scheme.
func (b *Builder) Scheme(s Scheme) *Builder {
	b.scheme = s
	b.hasScheme = !s.IsZero()
	return b
}

// HierPart sets both the authority and the path.
func (b *Builder) HierPart(hp HierPart) *Builder {
	b.hp = hp
	return b
}

// Authority sets the authority, nil removes it.
func (b *Builder) Authority(a *Authority) *Builder {
	b.hp.Authority = a
	return b
}

// Path sets the path.
func (b *Builder) Path(p string) *Builder {
	b.hp.Path = p
	return b
}

// Query sets the query, the zero [Query] removes it.
func (b *Builder) Query(q Query) *Builder {
	b.query = q
	return b
}

// Fragment sets the fragment, the zero [Fragment] removes it.
func (b *Builder) Fragment(f Fragment) *Builder {
	b.fragment = f
	return b
}

// Build returns the assembled URI.
// It panics if no scheme was set. Components are not validated,
// use [Builder.TryBuild] when the parts come from untrusted input.
func (b *Builder) Build() *URI {
	if !b.hasScheme {
		panic(errNoScheme)
	}
	return &URI{
		Scheme:    b.scheme,
		Authority: b.hp.Authority.Clone(),
		Path:      b.hp.Path,
		Query:     b.query,
		Fragment:  b.fragment,
	}
}

// TryBuild is like [Builder.Build] but fails with [errorutil.ErrInvalidArgument] instead of panicking
// and checks the assembled URI with [URI.Validate], so that its text parses back into an equal URI.
func (b *Builder) TryBuild() (*URI, error) {
	if !b.hasScheme {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(errNoScheme))
	}
	u := b.Build()
	if err := u.Validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// RenderTo writes the assembled URI to w.
// It panics if no scheme was set.
func (b *Builder) RenderTo(w io.Writer) (int, error) {
	return errtrace.Wrap2(b.Build().RenderTo(w))
}

// Bytes returns the assembled URI text.
// It panics if no scheme was set.
func (b *Builder) Bytes() []byte { return b.Build().Bytes() }

// String returns the assembled URI text.
// It panics if no scheme was set.
func (b *Builder) String() string { return b.Build().String() }
