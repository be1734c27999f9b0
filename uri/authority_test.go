package uri_test

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/urigrammar/uri"
)

func TestParseAuthority(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    uri.Authority
		wantPos int
		wantErr error
	}{
		{
			"reg-name",
			"example.com",
			uri.Authority{Host: uri.RegName("example.com")},
			11, nil,
		},
		{
			"reg-name stops on path",
			"example.com/over/there",
			uri.Authority{Host: uri.RegName("example.com")},
			11, nil,
		},
		{
			"empty host",
			"/etc/hosts",
			uri.Authority{},
			0, nil,
		},
		{
			"userinfo ipv4 port",
			"user:pw@127.0.0.1:80/path",
			uri.Authority{
				Userinfo: uri.NewUserinfo("user:pw"),
				Host:     uri.IPv4("127.0.0.1"),
				Port:     uri.NewPort("80"),
			},
			20, nil,
		},
		{
			"empty userinfo",
			"@host",
			uri.Authority{Userinfo: uri.NewUserinfo(""), Host: uri.RegName("host")},
			5, nil,
		},
		{
			"colon without at is port",
			"host:8042?q",
			uri.Authority{Host: uri.RegName("host"), Port: uri.NewPort("8042")},
			9, nil,
		},
		{
			"ipv4 out of range falls back to reg-name",
			"256.0.0.0:1",
			uri.Authority{Host: uri.RegName("256.0.0.0"), Port: uri.NewPort("1")},
			11, nil,
		},
		{
			"short ipv4 falls back to reg-name",
			"1.2.3",
			uri.Authority{Host: uri.RegName("1.2.3")},
			5, nil,
		},
		{
			"long ipv4 falls back to reg-name",
			"1.2.3.4.5",
			uri.Authority{Host: uri.RegName("1.2.3.4.5")},
			9, nil,
		},
		{
			"ipv4 prefix of reg-name",
			"1.2.3.4.example",
			uri.Authority{Host: uri.RegName("1.2.3.4.example")},
			15, nil,
		},
		{
			"pct-encoded userinfo and host",
			"j%40ne@ex%41mple.com",
			uri.Authority{Userinfo: uri.NewUserinfo("j%40ne"), Host: uri.RegName("ex%41mple.com")},
			20, nil,
		},
		{"port not found", "host:/", uri.Authority{}, 4, uri.ErrPortNotFound},
		{"port at end", "host:", uri.Authority{}, 4, uri.ErrPortNotFound},
		{"port leading zero", "host:080", uri.Authority{}, 4, uri.ErrPortNotFound},
		{"bad pct in userinfo", "us%zr@host", uri.Authority{}, 0, uri.ErrInvalidPercentEncoding},
		{"bad pct in host", "ho%4", uri.Authority{}, 0, uri.ErrInvalidPercentEncoding},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, pos, err := uri.ParseAuthority(c.in, 0)
			if diff := cmp.Diff(&got, &c.want); diff != "" {
				t.Errorf("uri.ParseAuthority(%q, 0) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if pos != c.wantPos {
				t.Errorf("uri.ParseAuthority(%q, 0) pos = %d, want %d", c.in, pos, c.wantPos)
			}
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("uri.ParseAuthority(%q, 0) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
		})
	}
}

func TestParseUserinfo_Rollback(t *testing.T) {
	t.Parallel()

	in := "//example.com:80"
	ui, pos, err := uri.ParseUserinfo(in, 2)
	if err != nil {
		t.Fatalf("uri.ParseUserinfo(%q, 2) error = %v, want nil", in, err)
	}
	if !ui.IsZero() {
		t.Errorf("uri.ParseUserinfo(%q, 2) = %q, want zero", in, ui)
	}
	if pos != 2 {
		t.Errorf("uri.ParseUserinfo(%q, 2) pos = %d, want 2", in, pos)
	}
}

func TestParseUserinfo_InvalidText(t *testing.T) {
	t.Parallel()

	in := []byte("us\xffer@host")
	_, pos, err := uri.ParseUserinfo(in, 0)
	if diff := cmp.Diff(err, uri.ErrInvalidText, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("uri.ParseUserinfo(%q, 0) error = %v, want %v\ndiff (-got +want):\n%v", in, err, uri.ErrInvalidText, diff)
	}
	if pos != 0 {
		t.Errorf("uri.ParseUserinfo(%q, 0) pos = %d, want 0", in, pos)
	}
}

func TestParseHost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       string
		wantKind uri.HostKind
		wantText string
		wantPos  int
	}{
		{"255.255.255.255", uri.HostIPv4, "255.255.255.255", 15},
		{"0.0.0.256", uri.HostRegName, "0.0.0.256", 9},
		{"10.0.0.1:5060", uri.HostIPv4, "10.0.0.1", 8},
		{"Example.COM/", uri.HostRegName, "Example.COM", 11},
		{"", uri.HostRegName, "", 0},
		{":80", uri.HostRegName, "", 0},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			h, pos, err := uri.ParseHost(c.in, 0)
			if err != nil {
				t.Fatalf("uri.ParseHost(%q, 0) error = %v, want nil", c.in, err)
			}
			if h.Kind() != c.wantKind || h.String() != c.wantText || pos != c.wantPos {
				t.Errorf("uri.ParseHost(%q, 0) = (%v %q, %d), want (%v %q, %d)",
					c.in, h.Kind(), h, pos, c.wantKind, c.wantText, c.wantPos)
			}
		})
	}
}

func TestParsePort(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    uri.Port
		wantPos int
		wantErr error
	}{
		{"", uri.Port{}, 0, nil},
		{"/path", uri.Port{}, 0, nil},
		{":5060", uri.NewPort("5060"), 5, nil},
		{":1/x", uri.NewPort("1"), 2, nil},
		{":", uri.Port{}, 0, uri.ErrPortNotFound},
		{":0", uri.Port{}, 0, uri.ErrPortNotFound},
		{":x", uri.Port{}, 0, uri.ErrPortNotFound},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got, pos, err := uri.ParsePort(c.in, 0)
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("uri.ParsePort(%q, 0) = %q, want %q\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if pos != c.wantPos {
				t.Errorf("uri.ParsePort(%q, 0) pos = %d, want %d", c.in, pos, c.wantPos)
			}
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("uri.ParsePort(%q, 0) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
		})
	}
}

func TestPort_Number(t *testing.T) {
	t.Parallel()

	cases := []struct {
		port    uri.Port
		want    uint16
		wantErr error
	}{
		{uri.NewPort("80"), 80, nil},
		{uri.PortNumber(65535), 65535, nil},
		{uri.NewPort("65536"), 0, uri.ErrInvalidPort},
		{uri.NewPort("99999999999"), 0, uri.ErrInvalidPort},
		{uri.Port{}, 0, uri.ErrInvalidPort},
	}

	for _, c := range cases {
		t.Run(c.port.String(), func(t *testing.T) {
			t.Parallel()

			got, err := c.port.Number()
			if got != c.want {
				t.Errorf("port.Number() = %d, want %d", got, c.want)
			}
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("port.Number() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
		})
	}
}

func TestPort_Number_OutOfRange(t *testing.T) {
	t.Parallel()

	_, err := uri.NewPort("65536").Number()
	if !errors.Is(err, uri.ErrInvalidPort) {
		t.Errorf("port.Number() error = %v, want %v", err, uri.ErrInvalidPort)
	}
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("port.Number() error = %v, want %v", err, strconv.ErrRange)
	}
	if err != nil && !strings.Contains(err.Error(), `"65536"`) {
		t.Errorf("port.Number() error = %q, want it to quote the digits", err)
	}
}

func TestHost_Accessors(t *testing.T) {
	t.Parallel()

	if ip, ok := uri.IPv4("192.168.0.1").IP(); !ok || ip != netip.MustParseAddr("192.168.0.1") {
		t.Errorf("uri.IPv4(%q).IP() = (%v, %v), want (192.168.0.1, true)", "192.168.0.1", ip, ok)
	}
	if _, ok := uri.RegName("example.com").IP(); ok {
		t.Errorf("uri.RegName(%q).IP() ok = true, want false", "example.com")
	}

	h, ok := uri.HostFromAddr(netip.MustParseAddr("10.1.2.3"))
	if !ok || !h.Equal(uri.IPv4("10.1.2.3")) {
		t.Errorf("uri.HostFromAddr(10.1.2.3) = (%v, %v), want (10.1.2.3, true)", h, ok)
	}
	if _, ok := uri.HostFromAddr(netip.MustParseAddr("::1")); ok {
		t.Error("uri.HostFromAddr(::1) ok = true, want false")
	}

	cases := []struct {
		host       uri.Host
		wantDomain bool
		wantValid  bool
	}{
		{uri.RegName("example.com"), true, true},
		{uri.RegName("localhost"), true, true},
		{uri.RegName(""), false, true},
		{uri.RegName("a..b"), false, true},
		{uri.RegName("ex ample"), false, false},
		{uri.IPv4("127.0.0.1"), false, true},
		{uri.IPv4("127.0.0.256"), false, false},
	}
	for _, c := range cases {
		if got := c.host.IsDomainName(); got != c.wantDomain {
			t.Errorf("host(%q).IsDomainName() = %v, want %v", c.host, got, c.wantDomain)
		}
		if got := c.host.IsValid(); got != c.wantValid {
			t.Errorf("host(%q).IsValid() = %v, want %v", c.host, got, c.wantValid)
		}
	}

	if !uri.RegName("Example.COM").Equal(uri.RegName("example.com")) {
		t.Error("reg-name hosts compared case-sensitively")
	}
	if uri.RegName("127.0.0.1").Equal(uri.IPv4("127.0.0.1")) {
		t.Error("hosts of different kinds compared equal")
	}
}

func TestUserinfo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		ui         uri.Userinfo
		wantRaw    string
		wantUser   string
		wantPasswd string
		wantHasPw  bool
	}{
		{"zero", uri.Userinfo{}, "", "", "", false},
		{"user only", uri.User("alice"), "alice", "alice", "", false},
		{"user and password", uri.UserPassword("alice", "s3cr:t"), "alice:s3cr%3At", "alice", "s3cr:t", true},
		{"escaped", uri.UserPassword("a@b", ""), "a%40b:", "a@b", "", true},
		{"raw", uri.NewUserinfo("j%40ne:x:y"), "j%40ne:x:y", "j@ne", "x:y", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.ui.String(); got != c.wantRaw {
				t.Errorf("ui.String() = %q, want %q", got, c.wantRaw)
			}
			if got := c.ui.Username(); got != c.wantUser {
				t.Errorf("ui.Username() = %q, want %q", got, c.wantUser)
			}
			pw, ok := c.ui.Password()
			if pw != c.wantPasswd || ok != c.wantHasPw {
				t.Errorf("ui.Password() = (%q, %v), want (%q, %v)", pw, ok, c.wantPasswd, c.wantHasPw)
			}
			if !c.ui.IsValid() {
				t.Errorf("ui.IsValid() = false, want true")
			}
		})
	}
}

func TestAuthority_Render(t *testing.T) {
	t.Parallel()

	httpPort, _ := uri.KnownScheme(uri.SchemeHTTP).DefaultPort()

	cases := []struct {
		name string
		auth *uri.Authority
		want string
	}{
		{"nil", nil, ""},
		{"zero", &uri.Authority{}, ""},
		{"full", &uri.Authority{
			Userinfo: uri.UserPassword("u", "p"),
			Host:     uri.IPv4("10.0.0.1"),
			Port:     uri.PortNumber(8080),
		}, "u:p@10.0.0.1:8080"},
		{"implied port", &uri.Authority{
			Host: uri.RegName("example.com"),
			Port: httpPort,
		}, "example.com"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.auth.String(); got != c.want {
				t.Errorf("auth.String() = %q, want %q", got, c.want)
			}
			if got := fmt.Sprintf("%s", c.auth); got != c.want {
				t.Errorf("fmt.Sprintf(%%s) = %q, want %q", got, c.want)
			}
		})
	}
}

func BenchmarkParseAuthority(b *testing.B) {
	inputs := [][]byte{
		[]byte("example.com"),
		[]byte("user:pw@127.0.0.1:8080"),
		[]byte("256.1.1.1.example.org:443"),
	}

	b.ReportAllocs()
	for b.Loop() {
		for _, in := range inputs {
			if _, _, err := uri.ParseAuthority(in, 0); err != nil {
				b.Fatal(err)
			}
		}
	}
}
