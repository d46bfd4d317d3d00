// Command btoep-find-offset prints the smallest offset satisfying a
// data/no-data predicate at or after a starting offset.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/tniessen/btoep/internal/btoeperr"
	"github.com/tniessen/btoep/internal/cli"
	"github.com/tniessen/btoep/internal/dataset"
	"github.com/tniessen/btoep/internal/fsx"
)

const version = "1.0.0"

const help = `Usage: btoep-find-offset [options]

Print the smallest offset >= --start-at satisfying --stop-at. Exits 1 with
no output if --stop-at=data finds nothing.

Options:
  --dataset <path>        Path to the data file (required)
  --index-path <path>     Path to the index file (default: <dataset>.idx)
  --lockfile-path <path>  Path to the lockfile (default: <dataset>.lock)
  --start-at <N>          Offset to start searching from (default: 0)
  --stop-at <predicate>   data|no-data (default: data)
  --help                  Show this help
  --version               Show version`

func main() {
	flags := flag.NewFlagSet("btoep-find-offset", flag.ContinueOnError)
	pathFlags := cli.RegisterPathFlags(flags)
	startAt := flags.Uint64("start-at", 0, "Offset to start searching from")
	stopAt := flags.String("stop-at", "data", "data|no-data")

	cmd := &cli.Command{
		Name:    "btoep-find-offset",
		Version: version,
		Flags:   flags,
		Help:    help,
		Exec: func(io *cli.IO, _ []string) error {
			predicate, err := parseStopAt(*stopAt)
			if err != nil {
				return err
			}

			offset, ok, err := dataset.FindOffset(fsx.NewReal(), pathFlags.Resolve(), *startAt, predicate)
			if err != nil {
				return err
			}

			if !ok {
				return cli.ErrNoResult
			}

			io.Println(offset)

			return nil
		},
	}

	os.Exit(cmd.Run(cli.NewIO(os.Stdout, os.Stderr), os.Args[1:]))
}

func parseStopAt(s string) (dataset.StopAt, error) {
	switch s {
	case "data":
		return dataset.StopAtData, nil
	case "no-data":
		return dataset.StopAtNoData, nil
	default:
		return 0, btoeperr.New(btoeperr.KindUsage, fmt.Sprintf("unknown --stop-at value %q", s))
	}
}
