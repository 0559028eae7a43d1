package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/rpaludo/contas"
)

// excludeCmd holds the flags for the 'exclude' subcommand.
type excludeCmd struct {
	month   string
	restore bool
}

func (*excludeCmd) Name() string     { return "exclude" }
func (*excludeCmd) Synopsis() string { return "exclude a generated bill from the month's view" }
func (*excludeCmd) Usage() string {
	return `cta exclude [-m <month>] [-restore] <bill-id>

  Excludes a generated bill from the month's view without touching its
  source. With -restore the bill is shown again.
`
}

func (c *excludeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month the bill belongs to (YYYY-MM), defaults to the current month")
	f.BoolVar(&c.restore, "restore", false, "Undo a previous exclusion")
}

func (c *excludeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("expected exactly one bill id, got %d arguments", f.NArg()))
	}
	m, err := monthOrNow(c.month)
	if err != nil {
		return fail(err)
	}

	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	next, err := contas.ExcludeBill(s, f.Arg(0), m, genOptions(), !c.restore)
	if err != nil {
		return fail(err)
	}
	if err := saveState(next); err != nil {
		return fail(err)
	}
	if c.restore {
		fmt.Printf("Restored %s\n", f.Arg(0))
	} else {
		fmt.Printf("Excluded %s\n", f.Arg(0))
	}
	return subcommands.ExitSuccess
}

// overrideCmd holds the flags for the 'override' subcommand.
type overrideCmd struct {
	month  string
	amount float64
}

func (*overrideCmd) Name() string     { return "override" }
func (*overrideCmd) Synopsis() string { return "override the expected amount of a bill" }
func (*overrideCmd) Usage() string {
	return `cta override [-m <month>] -v <amount> <bill-id>

  Overrides the expected amount of a generated bill for one month. The
  loan, policy or category behind the bill is left untouched.
`
}

func (c *overrideCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month the bill belongs to (YYYY-MM), defaults to the current month")
	f.Float64Var(&c.amount, "v", 0, "New expected amount")
}

func (c *overrideCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("expected exactly one bill id, got %d arguments", f.NArg()))
	}
	if c.amount <= 0 {
		return fail(fmt.Errorf("a positive -v amount is required"))
	}
	m, err := monthOrNow(c.month)
	if err != nil {
		return fail(err)
	}

	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	next, err := contas.OverrideBillAmount(s, f.Arg(0), m, genOptions(), contas.M(c.amount, ""))
	if err != nil {
		return fail(err)
	}
	if err := saveState(next); err != nil {
		return fail(err)
	}
	fmt.Printf("Overrode %s to %.2f\n", f.Arg(0), c.amount)
	return subcommands.ExitSuccess
}

// monthOrNow parses the month flag, defaulting to the current month.
func monthOrNow(s string) (contas.Month, error) {
	if s == "" {
		return contas.MonthOf(contas.Today()), nil
	}
	return contas.ParseMonth(s)
}
