// Command btoep-add writes bytes into a dataset at a given offset,
// reconciling any overlap with existing data per an on-conflict policy.
package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/tniessen/btoep/internal/btoepconfig"
	"github.com/tniessen/btoep/internal/btoeperr"
	"github.com/tniessen/btoep/internal/cli"
	"github.com/tniessen/btoep/internal/dataset"
	"github.com/tniessen/btoep/internal/fsx"
)

const version = "1.0.0"

const help = `Usage: btoep-add [options]

Write bytes from --source (or stdin) into the dataset starting at --offset,
reconciling overlap with existing data per --on-conflict.

Options:
  --dataset <path>        Path to the data file (required)
  --index-path <path>     Path to the index file (default: <dataset>.idx)
  --lockfile-path <path>  Path to the lockfile (default: <dataset>.lock)
  --offset <N>            Offset to write at (required)
  --source <path>         Read bytes from path instead of stdin
  --on-conflict <policy>  error|keep|overwrite (default: error, or config)
  --config <path>         Config file path
  --help                  Show this help
  --version               Show version`

func main() {
	flags := flag.NewFlagSet("btoep-add", flag.ContinueOnError)
	pathFlags := cli.RegisterPathFlags(flags)
	offset := flags.Uint64("offset", 0, "Offset to write at")
	source := flags.String("source", "", "Read bytes from path instead of stdin")
	onConflict := flags.String("on-conflict", "", "error|keep|overwrite")
	configPath := flags.String("config", "", "Config file path")

	cmd := &cli.Command{
		Name:    "btoep-add",
		Version: version,
		Flags:   flags,
		Help:    help,
		Exec: func(io *cli.IO, _ []string) error {
			return run(io, pathFlags, *offset, *source, *onConflict, *configPath)
		},
	}

	os.Exit(cmd.Run(cli.NewIO(os.Stdout, os.Stderr), os.Args[1:]))
}

func run(io *cli.IO, pathFlags *cli.PathFlags, offset uint64, source, onConflictFlag, configPath string) error {
	cfg, err := btoepconfig.Load(configPath)
	if err != nil {
		return btoeperr.Wrap(btoeperr.KindUsage, "config", err)
	}

	policyName := cfg.OnConflict
	if onConflictFlag != "" {
		policyName = onConflictFlag
	}

	policy, err := parsePolicy(policyName)
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin

	if source != "" {
		f, openErr := os.Open(source) //nolint:gosec // user-specified path is the whole point
		if openErr != nil {
			return btoeperr.Wrap(btoeperr.KindIO, source, openErr)
		}

		defer func() { _ = f.Close() }()

		r = f
	}

	return dataset.Add(fsx.NewReal(), pathFlags.Resolve(), offset, r, policy)
}

func parsePolicy(name string) (dataset.ConflictPolicy, error) {
	switch name {
	case "", "error":
		return dataset.PolicyError, nil
	case "keep":
		return dataset.PolicyKeep, nil
	case "overwrite":
		return dataset.PolicyOverwrite, nil
	default:
		return 0, btoeperr.New(btoeperr.KindUsage, fmt.Sprintf("unknown --on-conflict value %q", name))
	}
}
