package logging

import (
	"io"
	"log"
	"os"
	"strings"
)

// Logger is the minimal leveled logging interface used across the engine,
// the bot and the scheduler.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level; unknown values mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// StdLogger writes "LEVEL: message" lines through the standard log package.
type StdLogger struct {
	out   *log.Logger
	level Level
}

// NewStdLogger creates a logger writing to w at or above level.
func NewStdLogger(w io.Writer, level Level) *StdLogger {
	if w == nil {
		w = os.Stderr
	}
	return &StdLogger{out: log.New(w, "", log.LstdFlags), level: level}
}

func (l *StdLogger) logf(level Level, prefix, format string, args ...any) {
	if level < l.level {
		return
	}
	l.out.Printf(prefix+format, args...)
}

func (l *StdLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, "DEBUG: ", format, args...) }
func (l *StdLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, "INFO: ", format, args...) }
func (l *StdLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, "WARN: ", format, args...) }
func (l *StdLogger) Errorf(format string, args ...any) { l.logf(LevelError, "ERROR: ", format, args...) }

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
