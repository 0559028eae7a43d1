package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/rpaludo/contas"
	"github.com/rpaludo/contas/renderer"
)

// balanceCmd holds the flags for the 'balance' subcommand.
type balanceCmd struct {
	date    string
	account string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display account balances as of a date" }
func (*balanceCmd) Usage() string {
	return `cta balance [-d <date>] [-a <account>]

  Displays the balance of every account (or a single one) as of the given
  date. Credit card balances are shown as the amount owed.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the balance, defaults to today")
	f.StringVar(&c.account, "a", "", "Restrict to a single account id")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var b strings.Builder
	fmt.Fprintf(&b, "# Saldos em %s\n\n", asOf)
	for _, a := range s.Accounts {
		if c.account != "" && a.ID != c.account {
			continue
		}
		b.WriteString(renderer.Balance(a, asOf, s.BalanceAsOf(a.ID, asOf)))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
