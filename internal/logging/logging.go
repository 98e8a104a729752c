// Package logging provides a simple leveled logger on top of zerolog.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled logger. Child loggers created with With share the
// output and level of their parent.
type Logger struct {
	sink   *sink
	fields []any
}

// sink holds the zerolog logger shared by a logger and its children. It is
// rebuilt only when the output or level changes.
type sink struct {
	mu    sync.Mutex
	out   io.Writer
	level zerolog.Level
	zl    zerolog.Logger
}

func newSink(out io.Writer, level zerolog.Level) *sink {
	s := &sink{out: out, level: level}
	s.rebuild()
	return s
}

// rebuild must be called with mu held for writing.
func (s *sink) rebuild() {
	w := zerolog.ConsoleWriter{
		Out:        s.out,
		NoColor:    true,
		TimeFormat: "15:04:05.000",
	}
	s.zl = zerolog.New(w).Level(s.level).With().Timestamp().Logger()
}

// New creates a new logger writing to stderr.
func New(level Level) *Logger {
	return &Logger{sink: newSink(os.Stderr, level.zerolog())}
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.out = w
	l.sink.rebuild()
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level.zerolog()
	l.sink.rebuild()
}

// With returns a child logger that adds a structured field to every line.
func (l *Logger) With(key string, value any) *Logger {
	fields := make([]any, 0, len(l.fields)+2)
	fields = append(fields, l.fields...)
	fields = append(fields, key, value)
	return &Logger{sink: l.sink, fields: fields}
}

func (l *Logger) log(level Level, format string, args ...any) {
	// Held across the write so callers may pass unsynchronized writers.
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	ev := l.sink.zl.WithLevel(level.zerolog())
	if ev == nil {
		return
	}
	if len(l.fields) > 0 {
		ev = ev.Fields(l.fields)
	}
	ev.Msgf(format, args...)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return &Logger{sink: newSink(io.Discard, zerolog.Disabled)}
}
