package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"
)

// fmtCmd holds the flags for the 'fmt' subcommand.
type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the data files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cta fmt

  Validates the data files, sorts transactions by date and rewrites every
  file in the canonical indented form.
`
}

func (*fmtCmd) SetFlags(_ *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadState()
	if err != nil {
		return fail(err)
	}

	for _, tx := range s.Transactions {
		if err := tx.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	next := s.Clone()
	sort.SliceStable(next.Transactions, func(i, j int) bool {
		return next.Transactions[i].Date.Before(next.Transactions[j].Date)
	})

	if err := saveState(next); err != nil {
		return fail(err)
	}
	fmt.Println("Formatted data files.")
	return subcommands.ExitSuccess
}
