package logger

import (
	"io"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// out is where every log line goes. Command output is written to stdout by the
// cmd package, so logs stay on stderr and never end up inside piped results.
var out io.Writer = color.Error

var (
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgHiMagenta)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// Info logs informational messages in green color.
// Green is used for successful steps such as a catalog fetch or a written file.
var Info = func(format string, a ...any) { _, _ = infoColor.Fprintf(out, format, a...) }

// Warn logs warning messages in bright magenta color.
// Used when a command keeps going but the user should look at something,
// e.g. an asset that is missing from the catalog during `check`.
var Warn = func(format string, a ...any) { _, _ = warnColor.Fprintf(out, format, a...) }

// Error logs error messages in red color.
var Error = func(format string, a ...any) { _, _ = errorColor.Fprintf(out, format, a...) }

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It starts as a no-op so packages can log before Init runs (tests, mostly).
var Debug = func(format string, a ...any) {}

// Init initializes the logger package, specifically enabling or disabling debug logging.
// Parameters:
// - enableDebug: boolean flag to turn debug messages on or off.
// When enabled, Debug will print messages in cyan color.
// When disabled, Debug will be a no-op function that silently ignores debug logs.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = func(format string, a ...any) { _, _ = debugColor.Fprintf(out, format, a...) }
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// SetOutput redirects all log output to w and returns the previous writer,
// so callers can restore it.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}
