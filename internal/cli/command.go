package cli

import (
	"errors"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/tniessen/btoep/internal/btoeperr"
)

// ErrNoResult is returned by a Command's Exec to signal find-offset's
// "no-result" outcome: not an error, reported on exit code 1 with no
// stderr output.
var ErrNoResult = errors.New("cli: no result")

// Command is one btoep-* binary: a name, a version string, a flag set, a
// help block, and the function that does the work. Unlike the multiplexed
// "one binary, many subcommands" shape, each btoep-* binary is its own
// single-purpose Command (spec.md §6 fixes one binary per operation).
type Command struct {
	// Name is the binary name, e.g. "btoep-add".
	Name string

	// Version is printed by --version as "<name> <version>\n".
	Version string

	// Flags holds the command's flags, including the three common
	// dataset-path flags registered by the caller via [RegisterPathFlags].
	Flags *flag.FlagSet

	// Help is the full --help text, starting with "Usage: <name> [options]".
	// Every line must be <=80 columns (spec.md §6).
	Help string

	// Exec runs the command after flags are parsed. Return [ErrNoResult]
	// for find-offset's no-result outcome, or a *btoeperr.Error for any
	// other failure.
	Exec func(io *IO, args []string) error
}

// Run parses args, dispatches --help/--version, executes the command, and
// returns the process exit code per spec.md §6: 0 success, 1 no-result,
// 2 usage error, 3 application error.
func (c *Command) Run(io *IO, args []string) int {
	for _, a := range args {
		if a == "--version" {
			io.Printf("%s %s\n", c.Name, c.Version)
			return 0
		}
	}

	c.Flags.SetOutput(discardWriter{})

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			io.Println(c.Help)
			return 0
		}

		io.ErrPrintln("error:", err)

		return 2
	}

	err := c.Exec(io, c.Flags.Args())
	if err == nil {
		return 0
	}

	if errors.Is(err, ErrNoResult) {
		return 1
	}

	var btoepErr *btoeperr.Error
	if errors.As(err, &btoepErr) {
		reportError(io, btoepErr)
		return btoepErr.Kind.ExitCode()
	}

	io.ErrPrintln("error:", err)

	return 3
}

// reportError writes the spec.md §6 stderr format:
//
//	Error: <kind-message>[: <detail>]
//
//	Library error code: ...
//	System error name: ...
//	System error code: ...
func reportError(io *IO, err *btoeperr.Error) {
	io.ErrPrintln("Error:", err.Error())
	io.ErrPrintln()

	if code := err.Kind.Code(); code != 0 {
		io.ErrPrintln("Library error code:", code)
	}

	if err.Cause != nil {
		io.ErrPrintln("System error name:", err.Cause.Name)
		io.ErrPrintln("System error code:", err.Cause.Code)
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// CheckHelpWidth reports whether every line of s is <=80 columns. Exported
// so each cmd/btoep-*'s tests can assert their own --help text against
// spec.md §6's width requirement.
func CheckHelpWidth(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		if len(line) > 80 {
			return false
		}
	}

	return true
}
