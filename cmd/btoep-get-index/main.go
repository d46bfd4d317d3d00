// Command btoep-get-index writes the raw serialized index to stdout.
package main

import (
	"os"

	flag "github.com/spf13/pflag"

	"github.com/tniessen/btoep/internal/cli"
	"github.com/tniessen/btoep/internal/dataset"
	"github.com/tniessen/btoep/internal/fsx"
)

const version = "1.0.0"

const help = `Usage: btoep-get-index [options]

Write the raw serialized index to stdout, restricted to ranges of length
>= --min-range-length.

Options:
  --dataset <path>          Path to the data file (required)
  --index-path <path>       Path to the index file (default: <dataset>.idx)
  --lockfile-path <path>    Path to the lockfile (default: <dataset>.lock)
  --min-range-length <N>    Drop ranges shorter than this (default: 0)
  --help                    Show this help
  --version                 Show version`

func main() {
	flags := flag.NewFlagSet("btoep-get-index", flag.ContinueOnError)
	pathFlags := cli.RegisterPathFlags(flags)
	minRangeLength := flags.Uint64("min-range-length", 0, "Drop ranges shorter than this")

	cmd := &cli.Command{
		Name:    "btoep-get-index",
		Version: version,
		Flags:   flags,
		Help:    help,
		Exec: func(io *cli.IO, _ []string) error {
			encoded, err := dataset.GetIndex(fsx.NewReal(), pathFlags.Resolve(), *minRangeLength)
			if err != nil {
				return err
			}

			_, writeErr := io.Write(encoded)

			return writeErr
		},
	}

	os.Exit(cmd.Run(cli.NewIO(os.Stdout, os.Stderr), os.Args[1:]))
}
