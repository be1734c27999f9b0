package uri

import (
	"fmt"
	"io"
	"net/netip"
	"strconv"
	"unicode/utf8"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/urigrammar/internal/constraints"
	"github.com/ghettovoice/urigrammar/internal/errorutil"
	"github.com/ghettovoice/urigrammar/internal/grammar"
	"github.com/ghettovoice/urigrammar/internal/ioutil"
	"github.com/ghettovoice/urigrammar/internal/util"
)

// Userinfo is the optional user information of the authority, kept as raw text.
// The zero value means no userinfo.
type Userinfo struct {
	raw string
	set bool
}

// NewUserinfo returns userinfo with the raw, already escaped text.
func NewUserinfo(raw string) Userinfo { return Userinfo{raw: raw, set: true} }

// User returns userinfo with the escaped username.
func User(name string) Userinfo {
	return NewUserinfo(grammar.Escape(name, shouldEscapeUserChar))
}

// UserPassword returns userinfo with the escaped username and password.
func UserPassword(name, passwd string) Userinfo {
	return NewUserinfo(grammar.Escape(name, shouldEscapeUserChar) + ":" + grammar.Escape(passwd, shouldEscapeUserChar))
}

func shouldEscapeUserChar(c byte) bool { return !grammar.IsRegNameChar(c) }

// IsZero reports whether the userinfo is absent.
func (u Userinfo) IsZero() bool { return !u.set }

// String returns the raw userinfo text.
func (u Userinfo) String() string { return u.raw }

// Username returns the decoded part before the first ":".
func (u Userinfo) Username() string {
	for i := 0; i < len(u.raw); i++ {
		if u.raw[i] == ':' {
			return grammar.Unescape(u.raw[:i])
		}
	}
	return grammar.Unescape(u.raw)
}

// Password returns the decoded part after the first ":".
func (u Userinfo) Password() (string, bool) {
	for i := 0; i < len(u.raw); i++ {
		if u.raw[i] == ':' {
			return grammar.Unescape(u.raw[i+1:]), true
		}
	}
	return "", false
}

// IsValid reports whether the userinfo is absent or matches the userinfo grammar.
func (u Userinfo) IsValid() bool {
	if !u.set {
		return true
	}
	end, err := grammar.ScanUserinfo(u.raw, 0)
	return err == nil && end == len(u.raw) && utf8.ValidString(u.raw)
}

// Equal compares the userinfo with another [Userinfo] or *[Userinfo].
func (u Userinfo) Equal(val any) bool {
	var other Userinfo
	switch v := val.(type) {
	case Userinfo:
		other = v
	case *Userinfo:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return u.set == other.set && u.raw == other.raw
}

// HostKind is the kind of the host.
type HostKind uint8

const (
	// HostRegName is a registered name, possibly empty.
	HostRegName HostKind = iota
	// HostIPv4 is an IPv4 literal.
	HostIPv4
)

func (k HostKind) String() string {
	switch k {
	case HostRegName:
		return "reg-name"
	case HostIPv4:
		return "IPv4"
	default:
		return "HostKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Host is either a registered name or an IPv4 literal.
// The zero value is an empty registered name, as in "file:///etc/hosts".
type Host struct {
	kind HostKind
	text string
}

// RegName returns a registered name host.
func RegName(name string) Host { return Host{kind: HostRegName, text: name} }

// IPv4 returns an IPv4 literal host. Use [Host.IsValid] to check the literal.
func IPv4(addr string) Host { return Host{kind: HostIPv4, text: addr} }

// HostFromAddr returns an IPv4 host from the address.
// It returns false when the address is not IPv4.
func HostFromAddr(addr netip.Addr) (Host, bool) {
	if !addr.Is4() {
		return Host{}, false
	}
	return IPv4(addr.String()), true
}

// Kind returns the host kind.
func (h Host) Kind() HostKind { return h.kind }

// String returns the host text.
func (h Host) String() string { return h.text }

// IsZero reports whether the host is an empty registered name.
func (h Host) IsZero() bool { return h.kind == HostRegName && h.text == "" }

// IP returns the address of an IPv4 host.
func (h Host) IP() (netip.Addr, bool) {
	if h.kind != HostIPv4 {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(h.text)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr, true
}

// IsDomainName reports whether the host is a registered name that is also a valid DNS domain name.
func (h Host) IsDomainName() bool {
	if h.kind != HostRegName || h.text == "" || !h.IsValid() {
		return false
	}
	_, ok := dns.IsDomainName(h.text)
	return ok
}

// IsValid reports whether the host text matches the grammar of its kind.
func (h Host) IsValid() bool {
	switch h.kind {
	case HostIPv4:
		end, ok := grammar.ScanIPv4(h.text, 0)
		return ok && end == len(h.text)
	case HostRegName:
		end, err := grammar.ScanRegName(h.text, 0)
		return err == nil && end == len(h.text)
	default:
		return false
	}
}

// Equal compares the host with another [Host] or *[Host].
// Registered names are compared case-insensitively.
func (h Host) Equal(val any) bool {
	var other Host
	switch v := val.(type) {
	case Host:
		other = v
	case *Host:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	if h.kind != other.kind {
		return false
	}
	if h.kind == HostRegName {
		return util.EqFold(h.text, other.text)
	}
	return h.text == other.text
}

// Port is an optional port.
// It is either explicit, as captured after ":", or implied by the scheme, see [Scheme.DefaultPort].
// The zero value means no port.
type Port struct {
	digits  string
	implied bool
}

// NewPort returns an explicit port from the digits as they appear in the URI.
func NewPort(digits string) Port { return Port{digits: digits} }

// PortNumber returns an explicit port from the number.
func PortNumber(n uint16) Port { return Port{digits: strconv.FormatUint(uint64(n), 10)} }

// IsZero reports whether the port is absent.
func (p Port) IsZero() bool { return p.digits == "" }

// IsImplied reports whether the port comes from the scheme default.
func (p Port) IsImplied() bool { return p.implied }

// String returns the port digits.
func (p Port) String() string { return p.digits }

// Number returns the port as a number.
// It fails with [ErrInvalidPort] if the digits do not fit into 16 bits.
func (p Port) Number() (uint16, error) {
	n, err := strconv.ParseUint(p.digits, 10, 16)
	if err != nil {
		return 0, errtrace.Wrap(newInvalidPortErr(err))
	}
	return uint16(n), nil
}

// IsValid reports whether the port is absent or is a number without leading zeros.
func (p Port) IsValid() bool {
	return p.digits == "" || grammar.ScanNumber(p.digits, 0) == len(p.digits)
}

// Equal compares the port with another [Port] or *[Port].
func (p Port) Equal(val any) bool {
	var other Port
	switch v := val.(type) {
	case Port:
		other = v
	case *Port:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return p.digits == other.digits && p.implied == other.implied
}

// Authority is the "//" prefixed part of the hier-part.
type Authority struct {
	Userinfo Userinfo
	Host     Host
	Port     Port
}

// RenderTo writes the authority without the leading "//".
// Implied ports are not written.
func (a *Authority) RenderTo(w io.Writer) (num int, err error) {
	if a == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if !a.Userinfo.IsZero() {
		cw.Strings(a.Userinfo.raw, "@")
	}
	cw.Strings(a.Host.text)
	if !a.Port.IsZero() && !a.Port.implied {
		cw.Strings(":", a.Port.digits)
	}
	return errtrace.Wrap2(cw.Result())
}

// String returns the authority without the leading "//".
func (a *Authority) String() string {
	if a == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	a.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// Clone returns a copy of the authority.
func (a *Authority) Clone() *Authority {
	if a == nil {
		return nil
	}
	a2 := *a
	return &a2
}

// IsValid reports whether all authority components are valid.
func (a *Authority) IsValid() bool {
	return a != nil && a.Userinfo.IsValid() && a.Host.IsValid() && a.Port.IsValid()
}

// Equal compares the authority with another [Authority] or *[Authority].
func (a *Authority) Equal(val any) bool {
	var other *Authority
	switch v := val.(type) {
	case Authority:
		other = &v
	case *Authority:
		other = v
	default:
		return false
	}

	if a == other {
		return true
	} else if a == nil || other == nil {
		return false
	}
	return a.Userinfo.Equal(other.Userinfo) && a.Host.Equal(other.Host) && a.Port.Equal(other.Port)
}

// Format implements [fmt.Formatter].
func (a *Authority) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, a.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(a.String()))
	default:
		type hideMethods Authority
		type Authority hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Authority)(a))
	}
}

// ParseAuthority parses the authority at pos, pos should point right after "//".
//
// The userinfo phase is speculative: its run is committed only if it is terminated by "@".
// The host phase tries an IPv4 literal first and falls back to a registered name.
// The port phase requires a number after ":".
func ParseAuthority[T constraints.Byteseq](s T, pos int) (Authority, int, error) {
	var (
		auth Authority
		err  error
	)
	if auth.Userinfo, pos, err = ParseUserinfo(s, pos); err != nil {
		return Authority{}, pos, errtrace.Wrap(err)
	}
	if auth.Host, pos, err = ParseHost(s, pos); err != nil {
		return Authority{}, pos, errtrace.Wrap(err)
	}
	if auth.Port, pos, err = ParsePort(s, pos); err != nil {
		return Authority{}, pos, errtrace.Wrap(err)
	}
	return auth, pos, nil
}

// ParseUserinfo parses the userinfo and the "@" at pos.
// If the userinfo run is not followed by "@", it returns the zero [Userinfo] and pos unchanged.
func ParseUserinfo[T constraints.Byteseq](s T, pos int) (Userinfo, int, error) {
	end, err := grammar.ScanUserinfo(s, pos)
	if err != nil {
		return Userinfo{}, pos, errtrace.Wrap(err)
	}
	if end >= len(s) || s[end] != '@' {
		return Userinfo{}, pos, nil
	}
	raw, err := text(s, pos, end)
	if err != nil {
		return Userinfo{}, pos, errtrace.Wrap(err)
	}
	return NewUserinfo(raw), end + 1, nil
}

// ParseHost parses the host at pos.
// If neither IPv4 literal nor registered name bytes are found, it returns an empty registered name.
func ParseHost[T constraints.Byteseq](s T, pos int) (Host, int, error) {
	if end, ok := grammar.ScanIPv4(s, pos); ok {
		return IPv4(string(s[pos:end])), end, nil
	}

	end, err := grammar.ScanRegName(s, pos)
	if err != nil {
		return Host{}, pos, errtrace.Wrap(err)
	}
	return RegName(string(s[pos:end])), end, nil
}

// ParsePort parses ":" and the port number at pos.
// If there is no ":" at pos, it returns the zero [Port] and pos unchanged.
// A ":" without a number fails with [ErrPortNotFound].
func ParsePort[T constraints.Byteseq](s T, pos int) (Port, int, error) {
	if pos >= len(s) || s[pos] != ':' {
		return Port{}, pos, nil
	}
	end := grammar.ScanNumber(s, pos+1)
	if end == pos+1 {
		return Port{}, pos, errtrace.Wrap(grammar.NewError(ErrPortNotFound, pos+1))
	}
	return NewPort(string(s[pos+1 : end])), end, nil
}

// text materializes s[pos:end] as a string, the bytes must be valid UTF-8.
func text[T constraints.Byteseq](s T, pos, end int) (string, error) {
	str := string(s[pos:end])
	if !utf8.ValidString(str) {
		return "", errtrace.Wrap(grammar.NewError(ErrInvalidText, pos))
	}
	return str, nil
}

// newInvalidPortErr wraps the strconv error, its message already quotes the digits.
func newInvalidPortErr(err error) error {
	return errorutil.NewWrapperError(ErrInvalidPort, err) //errtrace:skip
}
