// Command btoep-set-size sets a dataset's data file length.
package main

import (
	"os"

	flag "github.com/spf13/pflag"

	"github.com/tniessen/btoep/internal/cli"
	"github.com/tniessen/btoep/internal/dataset"
	"github.com/tniessen/btoep/internal/fsx"
)

const version = "1.0.0"

const help = `Usage: btoep-set-size [options]

Set the data file length to exactly --size. Shrinking below indexed data
fails unless --force is given, in which case affected ranges are dropped
or clipped.

Options:
  --dataset <path>        Path to the data file (required)
  --index-path <path>     Path to the index file (default: <dataset>.idx)
  --lockfile-path <path>  Path to the lockfile (default: <dataset>.lock)
  --size <N>              New data file size in bytes (required)
  --force                 Allow a destructive shrink
  --help                  Show this help
  --version               Show version`

func main() {
	flags := flag.NewFlagSet("btoep-set-size", flag.ContinueOnError)
	pathFlags := cli.RegisterPathFlags(flags)
	size := flags.Uint64("size", 0, "New data file size in bytes")
	force := flags.Bool("force", false, "Allow a destructive shrink")

	cmd := &cli.Command{
		Name:    "btoep-set-size",
		Version: version,
		Flags:   flags,
		Help:    help,
		Exec: func(_ *cli.IO, _ []string) error {
			return dataset.SetSize(fsx.NewReal(), pathFlags.Resolve(), *size, *force)
		},
	}

	os.Exit(cmd.Run(cli.NewIO(os.Stdout, os.Stderr), os.Args[1:]))
}
