// Package logger traces builder activity for pagecraft.
//
// Tracing is off unless the root --verbose flag is set. Builder commands are
// logged at debug level and rejected operations at warn level. While the TUI
// owns the terminal, output should be pointed at a file with SetOutput.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed in front of each line.
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
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables tracing.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether tracing is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log lines. A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

// Debug traces a builder command.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info logs lifecycle events such as a server starting.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn logs rejected operations and recoverable failures.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error is printed even when tracing is off.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// Section prints a header separating phases such as bootstrap and run.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func logf(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose && level < LevelError {
		return
	}
	fmt.Fprintf(output, "["+level.String()+"] "+format+"\n", args...)
}
