package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/rpaludo/contas/renderer"
)

// billsCmd holds the flags for the 'bills' subcommand.
type billsCmd struct {
	month     string
	templates bool
}

func (*billsCmd) Name() string     { return "bills" }
func (*billsCmd) Synopsis() string { return "display the month's obligations" }
func (*billsCmd) Usage() string {
	return `cta bills [-m <month>] [-templates=false]

  Displays the obligations for a month: loan and insurance installments,
  fixed and variable expense estimates, and ad-hoc bills. With
  -templates=false only recorded bills are shown.
`
}

func (c *billsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to display (YYYY-MM), defaults to the current month")
	f.BoolVar(&c.templates, "templates", true, "Generate recurring obligations from loans, policies and categories")
}

func (c *billsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := monthOrNow(c.month)
	if err != nil {
		return fail(err)
	}

	s, err := loadState()
	if err != nil {
		return fail(err)
	}

	bills := s.BillsForMonth(m, c.templates, genOptions())
	printMarkdown(renderer.Bills(m, bills))
	return subcommands.ExitSuccess
}
