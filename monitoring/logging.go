package monitoring

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component"`
	EventType string                 `json:"event_type"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type Logger interface {
	Log(ctx context.Context, level LogLevel, eventType string, message string, details map[string]interface{})
}

type logger struct {
	component string
	min       LogLevel

	mu  sync.Mutex
	enc *json.Encoder
}

// NewLogger returns a Logger writing one JSON entry per line to w.
// Entries below minLevel are dropped.
func NewLogger(component string, w io.Writer, minLevel LogLevel) Logger {
	return &logger{
		component: component,
		min:       minLevel,
		enc:       json.NewEncoder(w),
	}
}

func (l *logger) Log(_ context.Context, level LogLevel, eventType string, message string, details map[string]interface{}) {
	if level < l.min {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level.String(),
		Message:   message,
		Component: l.component,
		EventType: eventType,
		Details:   details,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	//nolint:errcheck // logging is best effort.
	l.enc.Encode(entry)
}

type nopLogger struct{}

func (nopLogger) Log(context.Context, LogLevel, string, string, map[string]interface{}) {}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
