package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ghettovoice/urigrammar/internal/log"
)

func TestNew(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := log.New(buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("parse failed",
		slog.Any("input", log.StringValue([]byte("http://host:/"))),
		slog.Any("error", errors.New("port not found")),
	)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("log output %q contains debug record", out)
	}
	for _, want := range []string{"parse failed", "host", "port"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	if log.Noop.Enabled(context.Background(), slog.LevelError) {
		t.Error("log.Noop.Enabled(LevelError) = true, want false")
	}
}

func TestStringValue(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 300)
	got := log.StringValue(long).LogValue().String()
	if want := strings.Repeat("a", 256) + "..."; got != want {
		t.Errorf("log.StringValue(long) = %q, want %q", got, want)
	}
}
