package testutil

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

// NewLogger returns an slog.Logger that writes through tb.Log, so
// diagnostics from the code under test land in the output of exactly the
// test that triggered them.
func NewLogger(tb testing.TB) *slog.Logger {
	return slog.New(&tbHandler{tb: tb})
}

// tbHandler renders records as "LEVEL message key=value ..." lines.
// Group names prefix their attribute keys dot-separated.
type tbHandler struct {
	tb     testing.TB
	attrs  []slog.Attr
	groups []string
}

func (h *tbHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *tbHandler) Handle(_ context.Context, r slog.Record) error {
	h.tb.Helper()
	var sb strings.Builder
	sb.WriteString(r.Level.String())
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")
	write := func(a slog.Attr) {
		sb.WriteByte(' ')
		if prefix != "" {
			sb.WriteString(prefix)
			sb.WriteByte('.')
		}
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(a.Value.String())
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})

	h.tb.Log(sb.String())
	return nil
}

func (h *tbHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &tbHandler{tb: h.tb, groups: h.groups}
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return next
}

func (h *tbHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := &tbHandler{tb: h.tb, attrs: h.attrs}
	next.groups = append(append([]string{}, h.groups...), name)
	return next
}
