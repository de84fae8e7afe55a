// Package logger is the process-wide diagnostic log for kbot.
//
// Debug, Info and Section output appears only in verbose mode (--verbose).
// Warnings are always written: they report skipped files and degraded
// startup that the user should see even on a quiet run.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type level string

const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	now               = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects all log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

// Debug logs pipeline detail in verbose mode.
func Debug(format string, args ...any) {
	logf(levelDebug, false, format, args...)
}

// Info logs a notable event in verbose mode.
func Info(format string, args ...any) {
	logf(levelInfo, false, format, args...)
}

// Warn logs a recoverable problem. It is printed even when verbose is off.
func Warn(format string, args ...any) {
	logf(levelWarn, true, format, args...)
}

// Section prints a header separating one operation's debug lines from the next.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Timer starts timing an operation and returns a func that logs its
// duration at debug level:
//
//	defer logger.Timer("Rebuild")()
func Timer(name string) func() {
	start := now()
	return func() {
		Debug("%s took %s", name, now().Sub(start).Round(time.Millisecond))
	}
}

func logf(lvl level, always bool, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose && !always {
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", lvl, fmt.Sprintf(format, args...))
}
