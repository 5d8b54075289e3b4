// Package logging provides the severity-tagged message sink used by the
// extraction engine. The engine never writes to a console directly; callers
// inject a Sink and decide how each level is presented.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Level is the severity of a log message.
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
	}
	return "UNKNOWN"
}

// ParseLevel converts a level name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Sink accepts log messages. Implementations must be safe for concurrent use.
type Sink interface {
	Log(level Level, msg string)
}

// Logger wraps a Sink with printf-style helpers.
type Logger struct {
	sink Sink
}

// New returns a Logger writing to sink. A nil sink discards everything.
func New(sink Sink) Logger {
	if sink == nil {
		sink = Nop{}
	}
	return Logger{sink: sink}
}

func (l Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, format, v...) }
func (l Logger) Infof(format string, v ...any)  { l.logf(LevelInfo, format, v...) }
func (l Logger) Warnf(format string, v ...any)  { l.logf(LevelWarn, format, v...) }
func (l Logger) Errorf(format string, v ...any) { l.logf(LevelError, format, v...) }

func (l Logger) logf(level Level, format string, v ...any) {
	if l.sink == nil {
		return
	}
	l.sink.Log(level, fmt.Sprintf(format, v...))
}

// Nop discards all messages.
type Nop struct{}

func (Nop) Log(Level, string) {}

// Console writes colourised lines through zerolog.
type Console struct {
	log zerolog.Logger
}

// NewConsole returns a Console sink writing to w, dropping messages below min.
func NewConsole(w io.Writer, min Level) *Console {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return &Console{log: zerolog.New(cw).Level(zerologLevel(min)).With().Timestamp().Logger()}
}

func (c *Console) Log(level Level, msg string) {
	c.log.WithLevel(zerologLevel(level)).Msg(msg)
}

func zerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Entry is one recorded message.
type Entry struct {
	Level   Level
	Message string
}

// Recorder keeps every message in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Log(level Level, msg string) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
	r.mu.Unlock()
}

// Entries returns a copy of the recorded messages.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns how many messages were recorded at level.
func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
