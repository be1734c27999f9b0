// Command uriparse parses URIs and prints their components.
//
// URIs are taken from the arguments or, if there are none, from stdin, one per line.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ghettovoice/urigrammar/internal/errorutil"
	"github.com/ghettovoice/urigrammar/internal/log"
	"github.com/ghettovoice/urigrammar/uri"
)

var (
	strictPtr = flag.Bool("strict", false, "Reject schemes outside of the well-known set.")
	devPtr    = flag.Bool("dev", false, "Use the developer log format.")
	quietPtr  = flag.Bool("quiet", false, "Do not log, only print results.")

	errParseFailed = errors.New("some URIs failed to parse")
)

type config struct {
	strict bool
	dev    bool
	quiet  bool
}

func main() {
	flag.Parse()

	cfg := config{strict: *strictPtr, dev: *devPtr, quiet: *quietPtr}
	if err := run(os.Stdout, os.Stdin, flag.Args(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Encountered error(s): %s\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, in io.Reader, args []string, cfg config) error {
	opts := &uri.Options{
		StrictSchemes: cfg.strict,
		Logger:        cfg.logger(),
	}

	var failed bool
	handle := func(line string) {
		u, err := uri.ParseWith(line, opts)
		if err != nil {
			failed = true
			kind := "error"
			if errorutil.IsGrammarErr(err) {
				kind = "syntax error"
			}
			fmt.Fprintf(out, "%q: %s: %v\n", line, kind, err)
			return
		}
		opts.Logger.Debug("parsed", "uri", log.StringValue(u.String()))
		printURI(out, u)
	}

	if len(args) > 0 {
		for _, a := range args {
			handle(a)
		}
	} else {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			if line := sc.Text(); line != "" {
				handle(line)
			}
		}
		if err := sc.Err(); err != nil {
			return err
		}
	}

	if failed {
		return errParseFailed
	}
	return nil
}

func (cfg config) logger() *slog.Logger {
	switch {
	case cfg.quiet:
		return log.Noop
	case cfg.dev:
		return log.Dev
	default:
		return log.Def
	}
}

func printURI(w io.Writer, u *uri.URI) {
	fmt.Fprintf(w, "%s\n", u)
	fmt.Fprintf(w, "  scheme:    %s (%s)\n", u.Scheme, u.Scheme.Tag())
	if u.Authority != nil {
		a := u.Authority
		if !a.Userinfo.IsZero() {
			fmt.Fprintf(w, "  userinfo:  %s\n", a.Userinfo)
		}
		fmt.Fprintf(w, "  host:      %s (%s)\n", a.Host, a.Host.Kind())
	}
	if p, ok := u.EffectivePort(); ok {
		if p.IsImplied() {
			fmt.Fprintf(w, "  port:      %s (default)\n", p)
		} else {
			fmt.Fprintf(w, "  port:      %s\n", p)
		}
	}
	fmt.Fprintf(w, "  path:      %q\n", u.Path)
	if !u.Query.IsZero() {
		fmt.Fprintf(w, "  query:     %q\n", u.Query)
	}
	if !u.Fragment.IsZero() {
		fmt.Fprintf(w, "  fragment:  %q\n", u.Fragment)
	}
}
