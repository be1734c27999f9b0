// Package uri parses and assembles absolute Uniform Resource Identifiers according to RFC 3986.
//
// # Overview
//
// A URI is decomposed into its components:
//
//	  foo://user:pw@example.com:8042/over/there?name=ferret#nose
//	  \_/   \_____/ \_________/ \__/\_________/ \_________/ \__/
//	   |       |         |        |      |           |       |
//	scheme userinfo    host     port   path        query  fragment
//
// The [URI] type holds a [Scheme], an optional [Authority] made of [Userinfo], [Host] and [Port],
// a path, an optional [Query] and an optional [Fragment]. Optional components distinguish
// "absent" from "present but empty", so "http://h?" and "http://h" are different URIs.
//
// # Parsing
//
// [Parse] and [ParseWith] accept a string or a byte slice. The input is never modified
// and parsed components do not alias it:
//
//	u, err := uri.Parse("http://user:pw@127.0.0.1:80/path?q=1#frag")
//	if err != nil {
//	    return err
//	}
//	u.Authority.Host.Kind() // uri.HostIPv4
//
// Each grammar production has its own phase function with the same shape:
// it takes the input and a position and returns the parsed component together with
// the position right after it. Phases that may not match ([ParseUserinfo], [ParsePort],
// [ParseQuery], [ParseFragment]) return the input position unchanged when there is nothing to take.
// [ParseScheme], [ParseHierPart], [ParseAuthority], [ParseHost] and [ParsePath]
// complete the set and may be used to parse URI parts embedded into other grammars.
//
// The host is an IPv4 literal when the whole host matches the IPv4 grammar,
// otherwise it is a registered name, possibly empty as in "file:///etc/hosts".
// A ":" after the host must be followed by a port number.
//
// # Schemes
//
// Well-known schemes (http, https, ws, wss, ftp, file, mailto, sip, sips, tel, urn, ldap)
// are recognized case-insensitively and tagged, see [SchemeTag]. Their default ports are
// available through [Scheme.DefaultPort] and [SchemeByPort]. Other schemes are kept
// as lowercase names unless [Options.StrictSchemes] is set, then they fail with [ErrUnknownScheme].
//
// # Errors
//
// Parse errors wrap one of the exported error kinds ([ErrInvalidScheme], [ErrPortNotFound], ...)
// and carry the input offset. Use [errors.Is] to match them.
//
// # Assembling
//
// [Builder] assembles a URI from separately supplied parts:
//
//	u := uri.NewBuilder().
//	    Scheme(uri.KnownScheme(uri.SchemeHTTPS)).
//	    Authority(&uri.Authority{Host: uri.RegName("example.com")}).
//	    Path("/index.html").
//	    Build()
//
// Building without a scheme panics, use [Builder.TryBuild] to get an error instead.
//
// # Serialization
//
// [URI] implements [encoding.TextMarshaler] and [encoding.TextUnmarshaler].
// Components are rendered as they were parsed, no normalization is applied.
//
// # Thread Safety
//
// Parsing functions are safe for concurrent use. URI values are not safe for concurrent
// modification, use [URI.Clone] to share them across goroutines.
package uri
