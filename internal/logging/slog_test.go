package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "pending", "action", "auth/refresh")
	log.Info(ctx, "fulfilled", "status", 200)
	log.Warn(ctx, "client-log dropped", "status", 502)
	log.Error(ctx, "rejected", "kind", "transport")

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		attr  string
	}{
		{"DEBUG", "pending", "action=auth/refresh"},
		{"INFO", "fulfilled", "status=200"},
		{"WARN", `"client-log dropped"`, "status=502"},
		{"ERROR", "rejected", "kind=transport"},
	}

	for _, tc := range tests {
		if !strings.Contains(out, "level="+tc.level) {
			t.Fatalf("expected level=%s in output:\n%s", tc.level, out)
		}
		if !strings.Contains(out, "msg="+tc.msg) {
			t.Fatalf("expected msg=%s in output:\n%s", tc.msg, out)
		}
		if !strings.Contains(out, tc.attr) {
			t.Fatalf("expected attribute %s in output:\n%s", tc.attr, out)
		}
	}
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("request_id", "r-1", "action", "auth/login").Info(context.Background(), "sent", "path", "/auth/login")

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=sent", "request_id=r-1", "action=auth/login", "path=/auth/login"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestSlogLogger_DropsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	log.Debug(context.Background(), "pending")
	log.Info(context.Background(), "fulfilled")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got:\n%s", buf.String())
	}

	log.Warn(context.Background(), "rejected")
	if !strings.Contains(buf.String(), "msg=rejected") {
		t.Fatalf("expected warn record, got:\n%s", buf.String())
	}
}
