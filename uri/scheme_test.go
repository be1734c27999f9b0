package uri_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/urigrammar/uri"
)

func TestParseScheme_WellKnown(t *testing.T) {
	t.Parallel()

	for tag := uri.SchemeHTTP; tag <= uri.SchemeLDAP; tag++ {
		name := tag.String()
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, pos, err := uri.ParseScheme(name+":", 0)
			if err != nil {
				t.Fatalf("uri.ParseScheme(%q, 0) error = %v, want nil", name+":", err)
			}
			if got.Tag() != tag {
				t.Errorf("uri.ParseScheme(%q, 0) tag = %v, want %v", name+":", got.Tag(), tag)
			}
			if pos != len(name)+1 {
				t.Errorf("uri.ParseScheme(%q, 0) pos = %d, want %d", name+":", pos, len(name)+1)
			}
		})
	}
}

func TestParseScheme(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		pos     int
		want    uri.Scheme
		wantPos int
		wantErr error
	}{
		{"upper case", "HTTPS://example.com", 0, uri.KnownScheme(uri.SchemeHTTPS), 6, nil},
		{"generic", "Svn+SSH://host", 0, uri.NewScheme("svn+ssh"), 8, nil},
		{"prefix of known", "htt:x", 0, uri.NewScheme("htt"), 4, nil},
		{"extension of known", "httpx:x", 0, uri.NewScheme("httpx"), 6, nil},
		{"from offset", "<sip:alice>", 1, uri.KnownScheme(uri.SchemeSIP), 5, nil},
		{"no colon", "http", 0, uri.Scheme{}, 0, uri.ErrInvalidScheme},
		{"empty", "", 0, uri.Scheme{}, 0, uri.ErrInvalidScheme},
		{"starts with digit", "1http:", 0, uri.Scheme{}, 0, uri.ErrInvalidScheme},
		{"stops on bad char", "ht_tp:", 0, uri.Scheme{}, 0, uri.ErrInvalidScheme},
		{"only colon", ":foo", 0, uri.Scheme{}, 0, uri.ErrInvalidScheme},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, pos, err := uri.ParseScheme([]byte(c.in), c.pos)
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("uri.ParseScheme(%q, %d) scheme = %#v, want %#v\ndiff (-got +want):\n%v", c.in, c.pos, got, c.want, diff)
			}
			if pos != c.wantPos {
				t.Errorf("uri.ParseScheme(%q, %d) pos = %d, want %d", c.in, c.pos, pos, c.wantPos)
			}
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("uri.ParseScheme(%q, %d) error = %v, want %v\ndiff (-got +want):\n%v", c.in, c.pos, err, c.wantErr, diff)
			}
		})
	}
}

func TestLookupScheme(t *testing.T) {
	t.Parallel()

	s, err := uri.LookupScheme("WSS")
	if err != nil {
		t.Fatalf("uri.LookupScheme(%q) error = %v, want nil", "WSS", err)
	}
	if s.Tag() != uri.SchemeWSS {
		t.Errorf("uri.LookupScheme(%q) tag = %v, want %v", "WSS", s.Tag(), uri.SchemeWSS)
	}

	_, err = uri.LookupScheme("gopher")
	if diff := cmp.Diff(err, uri.ErrUnknownScheme, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("uri.LookupScheme(%q) error = %v, want %v\ndiff (-got +want):\n%v", "gopher", err, uri.ErrUnknownScheme, diff)
	}
}

func TestScheme_Accessors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		scheme    uri.Scheme
		wantName  string
		wantKnown bool
		wantValid bool
		wantPort  string
	}{
		{"zero", uri.Scheme{}, "", false, false, ""},
		{"http", uri.KnownScheme(uri.SchemeHTTP), "http", true, true, "80"},
		{"sips", uri.NewScheme("SIPS"), "sips", true, true, "5061"},
		{"mailto", uri.NewScheme("mailto"), "mailto", true, true, ""},
		{"generic", uri.NewScheme("Coap+TCP"), "coap+tcp", false, true, ""},
		{"invalid generic", uri.NewScheme("a b"), "a b", false, false, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.scheme.Name(); got != c.wantName {
				t.Errorf("scheme.Name() = %q, want %q", got, c.wantName)
			}
			if got := c.scheme.IsKnown(); got != c.wantKnown {
				t.Errorf("scheme.IsKnown() = %v, want %v", got, c.wantKnown)
			}
			if got := c.scheme.IsValid(); got != c.wantValid {
				t.Errorf("scheme.IsValid() = %v, want %v", got, c.wantValid)
			}
			port, ok := c.scheme.DefaultPort()
			if ok != (c.wantPort != "") || port.String() != c.wantPort {
				t.Errorf("scheme.DefaultPort() = (%q, %v), want %q", port, ok, c.wantPort)
			}
			if ok && !port.IsImplied() {
				t.Errorf("scheme.DefaultPort().IsImplied() = false, want true")
			}
		})
	}
}

func TestSchemeByPort(t *testing.T) {
	t.Parallel()

	cases := []struct {
		port   uri.Port
		want   uri.SchemeTag
		wantOk bool
	}{
		{uri.PortNumber(80), uri.SchemeHTTP, true},
		{uri.PortNumber(443), uri.SchemeHTTPS, true},
		{uri.PortNumber(5061), uri.SchemeSIPS, true},
		{uri.PortNumber(389), uri.SchemeLDAP, true},
		{uri.PortNumber(8080), uri.SchemeGeneric, false},
		{uri.Port{}, uri.SchemeGeneric, false},
	}

	for _, c := range cases {
		t.Run(c.port.String(), func(t *testing.T) {
			t.Parallel()

			got, ok := uri.SchemeByPort(c.port)
			if got.Tag() != c.want || ok != c.wantOk {
				t.Errorf("uri.SchemeByPort(%q) = (%v, %v), want (%v, %v)", c.port, got.Tag(), ok, c.want, c.wantOk)
			}
		})
	}
}

func TestKnownScheme_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("uri.KnownScheme(uri.SchemeGeneric) did not panic")
		}
	}()
	uri.KnownScheme(uri.SchemeGeneric)
}

func TestScheme_Format(t *testing.T) {
	t.Parallel()

	s := uri.NewScheme("HTTP")
	if got, want := fmt.Sprintf("%s %q %v", s, s, s), `http "http" http`; got != want {
		t.Errorf("fmt.Sprintf() = %q, want %q", got, want)
	}
}

func BenchmarkParseScheme(b *testing.B) {
	inputs := [][]byte{
		[]byte("http:"),
		[]byte("HTTPS:"),
		[]byte("mailto:"),
		[]byte("svn+ssh:"),
	}

	b.ReportAllocs()
	for b.Loop() {
		for _, in := range inputs {
			if _, _, err := uri.ParseScheme(in, 0); err != nil {
				b.Fatal(err)
			}
		}
	}
}
