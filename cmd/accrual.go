package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/rpaludo/contas"
	"github.com/rpaludo/contas/renderer"
)

// accrualCmd holds the flags for the 'accrual' subcommand.
type accrualCmd struct {
	date string
}

func (*accrualCmd) Name() string     { return "accrual" }
func (*accrualCmd) Synopsis() string { return "display an insurance policy's accrual position" }
func (*accrualCmd) Usage() string {
	return `cta accrual [-d <date>] <policy-id>

  Displays the straight-line accrual position of an insurance policy: how
  much premium is still to be expensed over the coverage window and how
  much of it remains unpaid.
`
}

func (c *accrualCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date, defaults to today")
}

func (c *accrualCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("expected exactly one policy id, got %d arguments", f.NArg()))
	}
	asOf := contas.Today()
	if c.date != "" {
		var err error
		asOf, err = contas.ParseDate(c.date)
		if err != nil {
			return fail(err)
		}
	}

	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	policy := s.Policy(f.Arg(0))
	if policy == nil {
		return fail(fmt.Errorf("unknown policy %q", f.Arg(0)))
	}
	pos := contas.Accrual(*policy, s.Transactions, asOf)
	printMarkdown(renderer.Accrual(*policy, asOf, pos))
	return subcommands.ExitSuccess
}
