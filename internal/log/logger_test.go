package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "ERROR", want: slog.LevelError},
		{input: "", want: slog.LevelInfo},
		{input: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: ComponentCosts,
		Handler:   slog.NewTextHandler(&buf, nil),
	})

	logger.Info("Cost accepted", FieldUserID, int64(123123))

	out := buf.String()
	if !strings.Contains(out, "component=costs") {
		t.Errorf("output missing component tag: %s", out)
	}
	if !strings.Contains(out, "user_id=123123") {
		t.Errorf("output missing field: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	logger := New(Config{Component: ComponentApp, Handler: slog.NewTextHandler(&bytes.Buffer{}, nil)})
	tagged := logger.WithComponent(ComponentHTTP)
	if tagged.Component() != ComponentHTTP {
		t.Errorf("component = %q, want %q", tagged.Component(), ComponentHTTP)
	}
	if logger.Component() != ComponentApp {
		t.Error("WithComponent mutated the parent logger")
	}
}

func TestFromContext(t *testing.T) {
	logger := New(Config{Component: ComponentAdmin, Handler: slog.NewTextHandler(&bytes.Buffer{}, nil)})
	ctx := WithContext(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext did not return the stored logger")
	}

	fallback := FromContext(context.Background())
	if fallback == nil || fallback.Component() != ComponentApp {
		t.Errorf("fallback logger = %+v", fallback)
	}
}
