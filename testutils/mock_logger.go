package testutils

import (
	"sync"

	"github.com/evdnx/mktsim/logger"
)

// logEntry captures a single log invocation for inspection in tests.
type logEntry struct {
	level  string
	msg    string
	fields []logger.Field
}

// MockLogger implements the Logger interface but stores entries in-memory.
type MockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

// NewMockLogger returns a logger that records everything.
func NewMockLogger() *MockLogger { return &MockLogger{} }

func (l *MockLogger) record(level, msg string, fields ...logger.Field) {
	copiedFields := append([]logger.Field(nil), fields...)
	l.mu.Lock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: copiedFields})
	l.mu.Unlock()
}

func (l *MockLogger) Debug(msg string, fields ...logger.Field) {
	l.record("debug", msg, fields...)
}
func (l *MockLogger) Info(msg string, fields ...logger.Field) {
	l.record("info", msg, fields...)
}
func (l *MockLogger) Warn(msg string, fields ...logger.Field) {
	l.record("warn", msg, fields...)
}
func (l *MockLogger) Error(msg string, fields ...logger.Field) {
	l.record("error", msg, fields...)
}

// LastMessage returns the message associated with the most recent log entry.
func (l *MockLogger) LastMessage() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return ""
	}
	return l.entries[len(l.entries)-1].msg
}

// Count returns how many entries were logged with msg at any level.
func (l *MockLogger) Count(msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.msg == msg {
			n++
		}
	}
	return n
}

// Levels returns the level of every entry, oldest first.
func (l *MockLogger) Levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.level
	}
	return out
}

// Field returns the named field of the most recent entry logged with msg.
func (l *MockLogger) Field(msg, key string) (logger.Field, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].msg != msg {
			continue
		}
		for _, f := range l.entries[i].fields {
			if f.Key == key {
				return f, true
			}
		}
		return logger.Field{}, false
	}
	return logger.Field{}, false
}
