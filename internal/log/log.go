// Package log provides structured logging for easelab.
// It wraps tea.LogToFile with structured fields (level, category, timestamp)
// and is enabled via --debug or EASELAB_DEBUG.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
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

// ParseLevel maps a level name to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// Category groups related log messages.
type Category string

const (
	CatPlayer  Category = "player"  // selection and playback
	CatEngine  Category = "engine"  // tween scheduling
	CatScript  Category = "script"  // edited code compilation
	CatUI      Category = "ui"      // UI component updates
	CatConfig  Category = "config"  // configuration loading/saving
	CatStorage Category = "storage" // capture persistence
)

const recentSize = 64

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	enabled  bool
	minLevel Level
	recent   []string
	next     int
}

var (
	defaultMu     sync.Mutex
	defaultLogger *Logger
)

// Init opens path for appending and installs it as the global logger.
// Returns a cleanup function to close the log file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // user-chosen debug log path
	if err != nil {
		return nil, err
	}
	install(&Logger{closer: f, writer: f, enabled: true, minLevel: LevelDebug})
	return func() { _ = f.Close() }, nil
}

// InitWithTeaLog uses tea.LogToFile for initialization.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	install(&Logger{closer: f, writer: f, enabled: true, minLevel: LevelDebug})
	return func() { _ = f.Close() }, nil
}

// SetOutput installs a logger writing to w. Passing nil disables logging.
func SetOutput(w io.Writer) {
	if w == nil {
		install(nil)
		return
	}
	install(&Logger{writer: w, enabled: true, minLevel: LevelDebug})
}

func install(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

func current() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultLogger
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Recent returns up to the last 64 entries, oldest first.
func Recent() []string {
	l := current()
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.recent) < recentSize {
		return append([]string(nil), l.recent...)
	}
	out := make([]string, 0, recentSize)
	out = append(out, l.recent[l.next:]...)
	return append(out, l.recent[:l.next]...)
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel {
		return
	}

	// 2026-01-02T10:45:00 [ERROR] [script] message key=value
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", time.Now().Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	entry := b.String()

	if len(l.recent) < recentSize {
		l.recent = append(l.recent, entry)
	} else {
		l.recent[l.next] = entry
		l.next = (l.next + 1) % recentSize
	}
	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry+"\n")
	}
}
