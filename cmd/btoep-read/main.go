// Command btoep-read streams bytes from a dataset to stdout.
package main

import (
	"os"

	flag "github.com/spf13/pflag"

	"github.com/tniessen/btoep/internal/cli"
	"github.com/tniessen/btoep/internal/dataset"
	"github.com/tniessen/btoep/internal/fsx"
)

const version = "1.0.0"

const help = `Usage: btoep-read [options]

Stream bytes from the dataset to stdout.

Options:
  --dataset <path>        Path to the data file (required)
  --index-path <path>     Path to the index file (default: <dataset>.idx)
  --lockfile-path <path>  Path to the lockfile (default: <dataset>.lock)
  --offset <N>            Offset to read from (default: 0)
  --length <N>            Exact number of bytes to read
  --limit <N>             Cap on bytes produced
  --help                  Show this help
  --version               Show version`

func main() {
	flags := flag.NewFlagSet("btoep-read", flag.ContinueOnError)
	pathFlags := cli.RegisterPathFlags(flags)
	offset := flags.Uint64("offset", 0, "Offset to read from")
	length := flags.Uint64("length", 0, "Exact number of bytes to read")
	limit := flags.Uint64("limit", 0, "Cap on bytes produced")

	cmd := &cli.Command{
		Name:    "btoep-read",
		Version: version,
		Flags:   flags,
		Help:    help,
		Exec: func(io *cli.IO, _ []string) error {
			var lengthPtr, limitPtr *uint64

			if flags.Changed("length") {
				lengthPtr = length
			}

			if flags.Changed("limit") {
				limitPtr = limit
			}

			return dataset.Read(fsx.NewReal(), pathFlags.Resolve(), io, *offset, lengthPtr, limitPtr)
		},
	}

	os.Exit(cmd.Run(cli.NewIO(os.Stdout, os.Stderr), os.Args[1:]))
}
