package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/rpaludo/contas"
)

// payCmd holds the flags for the 'pay' subcommand.
type payCmd struct {
	month   string
	account string
	date    string
	amount  float64
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "record payment of a bill" }
func (*payCmd) Usage() string {
	return `cta pay [-m <month>] [-a <account>] [-d <date>] [-v <amount>] <bill-id>

  Records the payment of a bill, creating the matching transaction. The
  account defaults to the bill's suggested account, the date to today and
  the amount to the expected amount.
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month the bill belongs to (YYYY-MM), defaults to the current month")
	f.StringVar(&c.account, "a", "", "Account to pay from")
	f.StringVar(&c.date, "d", "", "Payment date, defaults to today")
	f.Float64Var(&c.amount, "v", 0, "Paid amount, defaults to the expected amount")
}

func (c *payCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("expected exactly one bill id, got %d arguments", f.NArg()))
	}
	m, err := monthOrNow(c.month)
	if err != nil {
		return fail(err)
	}

	opts := contas.PayOptions{AccountID: c.account}
	if c.date != "" {
		day, err := contas.ParseDate(c.date)
		if err != nil {
			return fail(err)
		}
		opts.Date = day
	}
	if c.amount != 0 {
		opts.Amount = contas.M(c.amount, "")
	}

	s, err := loadState()
	if err != nil {
		return fail(err)
	}

	next, tx, err := contas.PayBill(s, f.Arg(0), m, genOptions(), opts)
	if err != nil {
		return fail(err)
	}
	if err := saveState(next); err != nil {
		return fail(err)
	}
	fmt.Printf("Paid %s on %s: %s\n", f.Arg(0), tx.Date, tx.Amount)
	return subcommands.ExitSuccess
}

// unpayCmd holds the flags for the 'unpay' subcommand.
type unpayCmd struct {
	month string
}

func (*unpayCmd) Name() string     { return "unpay" }
func (*unpayCmd) Synopsis() string { return "revert payment of a bill" }
func (*unpayCmd) Usage() string {
	return `cta unpay [-m <month>] <bill-id>

  Reverts the payment of a bill, removing the linked transaction.
`
}

func (c *unpayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month the bill belongs to (YYYY-MM), defaults to the current month")
}

func (c *unpayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	next, err := contas.UnpayBill(s, f.Arg(0), m, genOptions())
	if err != nil {
		return fail(err)
	}
	if err := saveState(next); err != nil {
		return fail(err)
	}
	fmt.Printf("Reverted payment of %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}
