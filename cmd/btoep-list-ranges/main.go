// Command btoep-list-ranges prints one line per indexed (or missing) range.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/tniessen/btoep/internal/btoepconfig"
	"github.com/tniessen/btoep/internal/btoeperr"
	"github.com/tniessen/btoep/internal/cli"
	"github.com/tniessen/btoep/internal/dataset"
	"github.com/tniessen/btoep/internal/fsx"
)

const version = "1.0.0"

const help = `Usage: btoep-list-ranges [options]

Print one line per range, lowest start first.

Options:
  --dataset <path>        Path to the data file (required)
  --index-path <path>     Path to the index file (default: <dataset>.idx)
  --lockfile-path <path>  Path to the lockfile (default: <dataset>.lock)
  --range-format <fmt>    inclusive|exclusive (default: exclusive, or config)
  --missing               Emit the complement up to the data file size
  --config <path>         Config file path
  --help                  Show this help
  --version               Show version`

func main() {
	flags := flag.NewFlagSet("btoep-list-ranges", flag.ContinueOnError)
	pathFlags := cli.RegisterPathFlags(flags)
	rangeFormat := flags.String("range-format", "", "inclusive|exclusive")
	missing := flags.Bool("missing", false, "Emit the complement up to the data file size")
	configPath := flags.String("config", "", "Config file path")

	cmd := &cli.Command{
		Name:    "btoep-list-ranges",
		Version: version,
		Flags:   flags,
		Help:    help,
		Exec: func(io *cli.IO, _ []string) error {
			cfg, err := btoepconfig.Load(*configPath)
			if err != nil {
				return btoeperr.Wrap(btoeperr.KindUsage, "config", err)
			}

			formatName := cfg.RangeFormat
			if *rangeFormat != "" {
				formatName = *rangeFormat
			}

			format, err := parseFormat(formatName)
			if err != nil {
				return err
			}

			lines, err := dataset.ListRanges(fsx.NewReal(), pathFlags.Resolve(), *missing, format)
			if err != nil {
				return err
			}

			for _, line := range lines {
				io.Println(line)
			}

			return nil
		},
	}

	os.Exit(cmd.Run(cli.NewIO(os.Stdout, os.Stderr), os.Args[1:]))
}

func parseFormat(s string) (dataset.RangeFormat, error) {
	switch s {
	case "", "exclusive":
		return dataset.FormatExclusive, nil
	case "inclusive":
		return dataset.FormatInclusive, nil
	default:
		return 0, btoeperr.New(btoeperr.KindUsage, fmt.Sprintf("unknown --range-format value %q", s))
	}
}
