// Package cli implements the shared command shell every btoep-* binary
// builds on: flag parsing, --help/--version text, and the error-to-exit-code
// mapping from spec.md §6/§7.
package cli

import (
	"fmt"
	"io"
)

// IO bundles a command's stdout/stderr writers. stdout is reserved for a
// command's payload (binary, not subject to any line-ending translation);
// stderr carries error/usage text.
type IO struct {
	out    io.Writer
	errOut io.Writer
}

// NewIO creates an IO writing to out/errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// Write implements io.Writer against stdout, so an IO can be passed
// directly to [dataset.Read] as the payload sink.
func (o *IO) Write(p []byte) (int, error) {
	return o.out.Write(p)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// ErrPrintf writes formatted output to stderr.
func (o *IO) ErrPrintf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.errOut, format, a...)
}
