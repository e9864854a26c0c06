// Package logging provides the leveled, field-structured logger used
// by the CLI surfaces.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log entry.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the level name.
func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a config string into a level. Unknown names
// fall back to InfoLevel.
func ParseLevel(name string) LogLevel {
	switch strings.ToLower(name) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// LogField is one key/value pair attached to an entry.
type LogField struct {
	Key   string
	Value interface{}
}

// Field creates a log field.
func Field(key string, value interface{}) LogField {
	return LogField{Key: key, Value: value}
}

// Logger is the logging interface used across the application.
type Logger interface {
	Debug(msg string, fields ...LogField)
	Info(msg string, fields ...LogField)
	Warn(msg string, fields ...LogField)
	Error(msg string, fields ...LogField)
	WithComponent(component string) Logger
	SetLevel(level LogLevel)
}

// DefaultLogger writes formatted entries to a single writer.
type DefaultLogger struct {
	mu        sync.Mutex
	level     LogLevel
	out       io.Writer
	component string
}

// NewDefaultLogger creates a logger writing to stderr at info level.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{level: InfoLevel, out: os.Stderr}
}

// NewLoggerWithWriter creates a logger writing to out.
func NewLoggerWithWriter(out io.Writer, level LogLevel) *DefaultLogger {
	return &DefaultLogger{level: level, out: out}
}

// SetLevel changes the minimum level that is written.
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// WithComponent returns a logger that stamps entries with a
// component name.
func (l *DefaultLogger) WithComponent(component string) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &DefaultLogger{level: l.level, out: l.out, component: component}
}

// Debug logs at debug level.
func (l *DefaultLogger) Debug(msg string, fields ...LogField) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs at info level.
func (l *DefaultLogger) Info(msg string, fields ...LogField) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs at warn level.
func (l *DefaultLogger) Warn(msg string, fields ...LogField) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs at error level.
func (l *DefaultLogger) Error(msg string, fields ...LogField) {
	l.log(ErrorLevel, msg, fields...)
}

func (l *DefaultLogger) log(level LogLevel, msg string, fields ...LogField) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	var builder strings.Builder
	builder.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	builder.WriteString(fmt.Sprintf(" [%s]", level))
	if l.component != "" {
		builder.WriteString(fmt.Sprintf(" [%s]", l.component))
	}
	builder.WriteString(" ")
	builder.WriteString(msg)
	if len(fields) > 0 {
		sorted := make([]LogField, len(fields))
		copy(sorted, fields)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		for _, f := range sorted {
			builder.WriteString(fmt.Sprintf(" %s=%v", f.Key, f.Value))
		}
	}
	builder.WriteString("\n")
	_, _ = io.WriteString(l.out, builder.String())
}
