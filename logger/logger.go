// Package logger provides the leveled, printf-style logger shared by the
// server, the services and the inbox daemon.
package logger

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
)

// Logger is a leveled logger. Messages are printf-style.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{"[DEBUG] ", "[INFO] ", "[WARN] ", "[ERROR] "}

// ParseLevel maps a config string to a Level. Unknown names mean info.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

type implLogger struct {
	out *log.Logger
	min Level
}

// New creates a Logger writing to stdout at the given level
func New(level string) Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a Logger writing to w
func NewWithWriter(w io.Writer, level string) Logger {
	return &implLogger{
		out: log.New(w, "", log.LstdFlags),
		min: ParseLevel(level),
	}
}

// Nop returns a Logger that discards everything
func Nop() Logger {
	return &implLogger{out: log.New(io.Discard, "", 0), min: LevelError + 1}
}

func (l *implLogger) enabled(level Level) bool {
	return level >= l.min
}

func (l *implLogger) logf(level Level, msg string, args []interface{}) {
	if l.enabled(level) {
		l.out.Printf(levelTags[level]+msg, args...)
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.logf(LevelDebug, msg, args)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.logf(LevelInfo, msg, args)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.logf(LevelWarn, msg, args)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.logf(LevelError, msg, args)
}
