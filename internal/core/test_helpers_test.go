package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"studyspace/internal/blob"
	"studyspace/internal/feedback"
	"studyspace/internal/infra/persistence/memory"
)

var testNow = time.Date(2025, 5, 9, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	repo := feedback.NewRepository(memory.NewStore(), feedback.WithClock(func() time.Time { return testNow }))
	base := []ServiceOption{WithClock(func() time.Time { return testNow }), WithBlobStore(blob.NewMemory())}
	return NewService(nil, repo, append(base, opts...)...)
}

type metricsCall struct {
	op      string
	success bool
}

type captureMetricsRecorder struct {
	mu    sync.Mutex
	calls []metricsCall
}

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, metricsCall{op: op, success: success})
}

func (c *captureMetricsRecorder) has(op string, success bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, call := range c.calls {
		if call.op == op && call.success == success {
			return true
		}
	}
	return false
}

type logLine struct {
	level string
	msg   string
}

type captureLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (c *captureLogger) add(level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, logLine{level, msg})
}

func (c *captureLogger) Debug(msg string, _ ...any) { c.add("debug", msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.add("info", msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.add("warn", msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.add("error", msg) }

func (c *captureLogger) has(level, msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if l.level == level && l.msg == msg {
			return true
		}
	}
	return false
}
