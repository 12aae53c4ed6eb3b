package ctxlog

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithWriter("debug", "json", buf)
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Debug("hello", "mod", "jei.jar")
	if !strings.Contains(buf.String(), `"mod":"jei.jar"`) {
		t.Fatalf("expected json log line, got %q", buf.String())
	}

	// no logger set does not panic
	FromContext(context.Background()).Info("dropped")
}

func TestNewWithWriter_level(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithWriter("warn", "text", buf)
	logger.Info("not shown")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}
