package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogger captures structured logs for assertion in tests.
type TestLogger struct {
	mu      sync.RWMutex
	Entries []LogEntry
	Logger  *slog.Logger
	buffer  *bytes.Buffer
}

// LogEntry represents a captured log entry.
type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// NewTestLogger creates a logger that captures all entries at debug level.
func NewTestLogger(t *testing.T) *TestLogger {
	t.Helper()

	tl := &TestLogger{buffer: &bytes.Buffer{}}
	tl.Logger = slog.New(&captureHandler{
		testLogger: tl,
		handler:    slog.NewTextHandler(tl.buffer, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
	return tl
}

// captureHandler wraps a slog handler to capture entries.
type captureHandler struct {
	testLogger *TestLogger
	handler    slog.Handler
	attrs      []slog.Attr
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	entry := LogEntry{Level: r.Level, Message: r.Message, Attrs: make(map[string]any)}
	for _, a := range h.attrs {
		entry.Attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		entry.Attrs[a.Key] = a.Value.Any()
		return true
	})

	h.testLogger.mu.Lock()
	defer h.testLogger.mu.Unlock()
	h.testLogger.Entries = append(h.testLogger.Entries, entry)
	return h.handler.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{
		testLogger: h.testLogger,
		handler:    h.handler.WithAttrs(attrs),
		attrs:      append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{
		testLogger: h.testLogger,
		handler:    h.handler.WithGroup(name),
		attrs:      h.attrs,
	}
}

// GetEntriesContaining returns entries whose message contains a substring.
func (l *TestLogger) GetEntriesContaining(substring string) []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []LogEntry
	for _, e := range l.Entries {
		if strings.Contains(e.Message, substring) {
			result = append(result, e)
		}
	}
	return result
}

// GetOutput returns everything the logger has rendered.
func (l *TestLogger) GetOutput() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.buffer.String()
}

// AssertContains asserts that at least one log entry contains the message.
func (l *TestLogger) AssertContains(t *testing.T, msg string) {
	t.Helper()
	if len(l.GetEntriesContaining(msg)) == 0 {
		t.Errorf("Expected log to contain message %q, but it wasn't found", msg)
	}
}

// AssertOutputExcludes asserts that s appears nowhere in the rendered log,
// attributes included.
func (l *TestLogger) AssertOutputExcludes(t *testing.T, s string) {
	t.Helper()
	if strings.Contains(l.GetOutput(), s) {
		t.Errorf("Expected log output to exclude %q", s)
	}
}
