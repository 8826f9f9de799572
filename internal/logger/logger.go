// Package logger provides leveled logging for the 7shifts CLI.
// Debug, info and section output only appears with --verbose, where it
// traces each API request and each store write. Warnings and errors are
// always printed. Everything goes to stderr so command output stays
// clean for piping.
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

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logVerbose("[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logVerbose("[INFO] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Warn prints a warning.
func Warn(format string, args ...any) {
	logAlways("[WARN] ", format, args...)
}

// Error prints an error.
func Error(format string, args ...any) {
	logAlways("[ERROR] ", format, args...)
}

// Block prints a multi-line payload, such as an API response body,
// indented under a label.
func Block(label string, body []byte) {
	if len(body) == 0 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, "%s:\n%s\n", label, body)
}

func logVerbose(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

func logAlways(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, prefix+format+"\n", args...)
}
