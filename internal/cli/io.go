package cli

import (
	"fmt"
	"io"
)

// IO handles command output and keeps warnings visible.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []string
	flushed  int
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn records a non-fatal problem.
//
// Parameters:
//   - issue: what went wrong
//   - action: what the user can do about it
//
// Warnings are printed to stderr before the next stdout write, or by
// [IO.Finish] if nothing else is printed. They never change the exit code.
func (o *IO) Warn(issue string, action string) {
	o.warnings = append(o.warnings, fmt.Sprintf("%s: %s", issue, action))
}

// Println writes to stdout. Pending warnings are printed to stderr first.
func (o *IO) Println(a ...any) {
	o.flushWarnings()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout. Pending warnings are printed to
// stderr first.
func (o *IO) Printf(format string, a ...any) {
	o.flushWarnings()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	o.flushWarnings()
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Out returns the stdout writer, for prompts that write directly.
func (o *IO) Out() io.Writer {
	return o.out
}

// Finish prints any warnings not printed yet.
func (o *IO) Finish() {
	o.flushWarnings()
}

func (o *IO) flushWarnings() {
	for ; o.flushed < len(o.warnings); o.flushed++ {
		_, _ = fmt.Fprintln(o.errOut, "warning:", o.warnings[o.flushed])
	}
}
