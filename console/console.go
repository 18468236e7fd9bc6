// Package console provides single-line colored terminal output with three
// modes: success (green), error (red), and plain. It is the human-operator
// channel for notable outcomes and caught errors; it is never a
// machine-readable interface and its methods never fail.
//
// Color is applied only when the destination is a terminal (detected via
// golang.org/x/term) and the NO_COLOR environment variable is unset. In
// non-interactive environments (CI, pipes) every mode degrades to a plain
// line.
package console

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI escape sequences for the two colored modes.
const (
	red      = "\033[91m"
	green    = "\033[92m"
	endColor = "\033[0m"
)

// Logger is the output collaborator injected into cloudspark components.
// Implementations must be safe for concurrent use and must never panic or
// return errors; output is best-effort.
type Logger interface {
	Success(format string, args ...any)
	Error(format string, args ...any)
	Plain(format string, args ...any)
}

// ConsoleLogger writes single colored lines to a writer.
//
// Fields Colored and Writer are public so tests can override them after
// construction without needing additional constructors.
type ConsoleLogger struct {
	// Colored controls whether ANSI color codes are emitted. New() sets this
	// automatically from TTY detection; override in tests to force a mode.
	Colored bool

	// Writer is the destination for all output. Defaults to os.Stdout.
	Writer io.Writer
}

// New constructs a ConsoleLogger. Pass an io.Writer to redirect output
// (useful in tests); pass nil to use os.Stdout.
//
// Color detection: Colored is set to true only when both of the following
// hold:
//   - the NO_COLOR env var is unset
//   - os.Stdout is a terminal (golang.org/x/term.IsTerminal)
//
// If w is non-nil, detection is still performed against os.Stdout so that
// output matches what a real terminal would see. Override Colored directly
// after construction to force a specific mode.
func New(w io.Writer) *ConsoleLogger {
	if w == nil {
		w = os.Stdout
	}
	colored := os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stdout.Fd()))
	return &ConsoleLogger{
		Colored: colored,
		Writer:  w,
	}
}

// Success prints a green line.
func (c *ConsoleLogger) Success(format string, args ...any) {
	c.line(green, format, args...)
}

// Error prints a red line.
func (c *ConsoleLogger) Error(format string, args ...any) {
	c.line(red, format, args...)
}

// Plain prints an uncolored line regardless of TTY state.
func (c *ConsoleLogger) Plain(format string, args ...any) {
	c.line("", format, args...)
}

func (c *ConsoleLogger) line(color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if color != "" && c.Colored {
		fmt.Fprintf(c.Writer, "%s%s%s\n", color, msg, endColor)
		return
	}
	fmt.Fprintln(c.Writer, msg)
}

// nopLogger discards all output.
type nopLogger struct{}

func (nopLogger) Success(string, ...any) {}
func (nopLogger) Error(string, ...any)   {}
func (nopLogger) Plain(string, ...any)   {}

// Nop returns a Logger that discards everything. It is the default
// collaborator when callers do not wire their own.
func Nop() Logger { return nopLogger{} }
