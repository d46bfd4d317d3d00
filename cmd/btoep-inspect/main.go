// Command btoep-inspect is an interactive, read-only REPL for poking at a
// dataset without memorizing the one-shot command names. It opens the
// dataset once, in read-only mode, and holds the lock for the session.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/tniessen/btoep/internal/btoeperr"
	"github.com/tniessen/btoep/internal/cli"
	"github.com/tniessen/btoep/internal/dataset"
	"github.com/tniessen/btoep/internal/fsx"
)

const version = "1.0.0"

const help = `Usage: btoep-inspect [options]

Open a dataset read-only and explore it interactively.

Options:
  --dataset <path>        Path to the data file (required)
  --index-path <path>     Path to the index file (default: <dataset>.idx)
  --lockfile-path <path>  Path to the lockfile (default: <dataset>.lock)
  --help                  Show this help
  --version               Show version

Commands:
  ranges                   List all indexed ranges
  query <offset>            Show whether offset is indexed, and its range
  next-data <offset>        Smallest offset >= offset that has data
  next-missing <offset>     Smallest offset >= offset that has no data
  size                      Print the data file size
  help                      Show this command list
  exit                      Leave the REPL`

func main() {
	flags := flag.NewFlagSet("btoep-inspect", flag.ContinueOnError)
	pathFlags := cli.RegisterPathFlags(flags)

	cmd := &cli.Command{
		Name:    "btoep-inspect",
		Version: version,
		Flags:   flags,
		Help:    help,
		Exec: func(io *cli.IO, _ []string) error {
			return runRepl(io, pathFlags.Resolve())
		},
	}

	os.Exit(cmd.Run(cli.NewIO(os.Stdout, os.Stderr), os.Args[1:]))
}

func runRepl(out *cli.IO, paths dataset.Paths) error {
	h, err := dataset.Open(fsx.NewReal(), paths, dataset.ModeReadOnly)
	if err != nil {
		return err
	}

	defer func() { _ = h.Close() }()

	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)

	for {
		input, readErr := line.Prompt("btoep> ")
		if readErr != nil {
			if readErr == liner.ErrPromptAborted || readErr == io.EOF {
				return nil
			}

			return btoeperr.Wrap(btoeperr.KindIO, "stdin", readErr)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		if dispatch(out, h, input) {
			return nil
		}
	}
}

// dispatch runs one command and reports whether the REPL should exit.
func dispatch(out *cli.IO, h *dataset.Handle, input string) bool {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		out.Println(help)
	case "size":
		cmdSize(out, h)
	case "ranges":
		cmdRanges(out, h)
	case "query":
		cmdQuery(out, h, args)
	case "next-data":
		cmdNextData(out, h, args)
	case "next-missing":
		cmdNextMissing(out, h, args)
	default:
		out.ErrPrintln(fmt.Sprintf("unknown command %q (try \"help\")", cmd))
	}

	return false
}

func cmdSize(out *cli.IO, h *dataset.Handle) {
	size, err := h.Size()
	if err != nil {
		out.ErrPrintln(err)

		return
	}

	out.Println(size)
}

func cmdRanges(out *cli.IO, h *dataset.Handle) {
	ranges := h.Index().Iter(0)
	if len(ranges) == 0 {
		out.Println("(empty)")

		return
	}

	starts := make([]string, len(ranges))
	startWidth := 0

	for i, r := range ranges {
		starts[i] = strconv.FormatUint(r.Start, 10)
		if w := runewidth.StringWidth(starts[i]); w > startWidth {
			startWidth = w
		}
	}

	for i, r := range ranges {
		pad := startWidth - runewidth.StringWidth(starts[i])
		out.Printf("%s%s...%d\n", strings.Repeat(" ", pad), starts[i], r.End)
	}
}

func cmdQuery(out *cli.IO, h *dataset.Handle, args []string) {
	offset, ok := parseOffset(out, args)
	if !ok {
		return
	}

	if r, found := h.Index().Query(offset); found {
		out.Printf("data, range %d...%d\n", r.Start, r.End)
	} else {
		out.Println("no data")
	}
}

func cmdNextData(out *cli.IO, h *dataset.Handle, args []string) {
	offset, ok := parseOffset(out, args)
	if !ok {
		return
	}

	if next, found := h.Index().FindNextData(offset); found {
		out.Println(next)
	} else {
		out.Println("(none)")
	}
}

func cmdNextMissing(out *cli.IO, h *dataset.Handle, args []string) {
	offset, ok := parseOffset(out, args)
	if !ok {
		return
	}

	out.Println(h.Index().FindNextMissing(offset))
}

func parseOffset(out *cli.IO, args []string) (uint64, bool) {
	if len(args) != 1 {
		out.ErrPrintln("expected exactly one offset argument")

		return 0, false
	}

	offset, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		out.ErrPrintln(fmt.Sprintf("invalid offset %q", args[0]))

		return 0, false
	}

	return offset, true
}
