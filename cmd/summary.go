package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/rpaludo/contas/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	month string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the month's income and expenses" }
func (*summaryCmd) Usage() string {
	return `cta summary [-m <month>]

  Displays income, expenses and the net result for a month. Transfers and
  opening balances are not results and are left out.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to summarize (YYYY-MM), defaults to the current month")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := monthOrNow(c.month)
	if err != nil {
		return fail(err)
	}
	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Summary(s.Summarize(m)))
	return subcommands.ExitSuccess
}
