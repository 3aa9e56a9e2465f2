// Package logger provides leveled logging for papersum.
// Debug and Info messages trace the pipeline stages and are printed only in
// verbose mode (--verbose). Warnings and errors are always printed, because
// a failed paper or chunk must be visible even in quiet runs.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// write prints a prefixed line. Quiet lines are dropped unless verbose.
func write(prefix string, quiet bool, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if quiet && !verbose {
		return
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write("[DEBUG] ", true, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	write("\n=== ", true, "%s ===", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write("[INFO] ", true, format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	write("[WARN] ", false, format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	write("[ERROR] ", false, format, args...)
}
