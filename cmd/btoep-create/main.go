// Command btoep-create creates a new dataset: an empty index file and a
// data file of the requested size.
package main

import (
	"os"

	flag "github.com/spf13/pflag"

	"github.com/tniessen/btoep/internal/cli"
	"github.com/tniessen/btoep/internal/dataset"
	"github.com/tniessen/btoep/internal/fsx"
)

const version = "1.0.0"

const help = `Usage: btoep-create [options]

Create a new dataset: an empty index file and a data file of the given
size (sparse zeros).

Options:
  --dataset <path>        Path to the data file (required)
  --index-path <path>     Path to the index file (default: <dataset>.idx)
  --lockfile-path <path>  Path to the lockfile (default: <dataset>.lock)
  --size <N>              Initial data file size in bytes (default: 0)
  --help                  Show this help
  --version               Show version`

func main() {
	flags := flag.NewFlagSet("btoep-create", flag.ContinueOnError)
	pathFlags := cli.RegisterPathFlags(flags)
	size := flags.Uint64("size", 0, "Initial data file size in bytes")

	cmd := &cli.Command{
		Name:    "btoep-create",
		Version: version,
		Flags:   flags,
		Help:    help,
		Exec: func(io *cli.IO, _ []string) error {
			return dataset.Create(fsx.NewReal(), pathFlags.Resolve(), *size)
		},
	}

	os.Exit(cmd.Run(cli.NewIO(os.Stdout, os.Stderr), os.Args[1:]))
}
