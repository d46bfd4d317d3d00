package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/tniessen/btoep/internal/dataset"
)

// PathFlags holds the three common dataset-location flags every btoep-*
// command accepts (spec.md §6).
type PathFlags struct {
	Dataset  *string
	Index    *string
	Lockfile *string
}

// RegisterPathFlags registers --dataset, --index-path, and --lockfile-path
// on fs.
func RegisterPathFlags(fs *flag.FlagSet) *PathFlags {
	return &PathFlags{
		Dataset:  fs.String("dataset", "", "Path to the data file"),
		Index:    fs.String("index-path", "", "Path to the index file (default: <dataset>.idx)"),
		Lockfile: fs.String("lockfile-path", "", "Path to the lockfile (default: <dataset>.lock)"),
	}
}

// Resolve builds a [dataset.Paths] from the parsed flag values.
func (p *PathFlags) Resolve() dataset.Paths {
	return dataset.Resolve(*p.Dataset, *p.Index, *p.Lockfile)
}
