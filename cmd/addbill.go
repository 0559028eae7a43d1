package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/rpaludo/contas"
)

// addBillCmd holds the flags for the 'add-bill' subcommand.
type addBillCmd struct {
	due      string
	amount   float64
	account  string
	category string
}

func (*addBillCmd) Name() string     { return "add-bill" }
func (*addBillCmd) Synopsis() string { return "add a one-off bill" }
func (*addBillCmd) Usage() string {
	return `cta add-bill -d <due-date> -v <amount> [-a <account>] [-c <category>] <description>

  Adds a one-off bill for the month of its due date.
`
}

func (c *addBillCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.due, "d", "", "Due date (YYYY-MM-DD)")
	f.Float64Var(&c.amount, "v", 0, "Expected amount")
	f.StringVar(&c.account, "a", "", "Suggested account id")
	f.StringVar(&c.category, "c", "", "Suggested category id")
}

func (c *addBillCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return fail(fmt.Errorf("a description is required"))
	}
	if c.amount <= 0 {
		return fail(fmt.Errorf("a positive -v amount is required"))
	}
	due, err := contas.ParseDate(c.due)
	if err != nil {
		return fail(err)
	}

	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	bill := contas.NewAdHocBill(flagArgsJoined(f), due, contas.M(c.amount, ""))
	bill.SuggestedAccountID = c.account
	bill.SuggestedCategoryID = c.category
	next := s.Clone()
	next.UpsertBill(bill)
	if err := saveState(next); err != nil {
		return fail(err)
	}
	fmt.Printf("Added bill %s due %s\n", bill.ID, bill.DueDate)
	return subcommands.ExitSuccess
}

// installmentsCmd holds the flags for the 'installments' subcommand.
type installmentsCmd struct {
	due      string
	amount   float64
	count    int
	account  string
	category string
}

func (*installmentsCmd) Name() string { return "installments" }
func (*installmentsCmd) Synopsis() string {
	return "spread a purchase into monthly installment bills"
}
func (*installmentsCmd) Usage() string {
	return `cta installments -d <first-due> -v <amount> -n <count> [-a <account>] [-c <category>] <description>

  Creates one bill per month for a purchase paid in installments. The
  amount is the value of each installment, not the total.
`
}

func (c *installmentsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.due, "d", "", "Due date of the first installment (YYYY-MM-DD)")
	f.Float64Var(&c.amount, "v", 0, "Amount of each installment")
	f.IntVar(&c.count, "n", 0, "Number of installments")
	f.StringVar(&c.account, "a", "", "Suggested account id")
	f.StringVar(&c.category, "c", "", "Suggested category id")
}

func (c *installmentsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return fail(fmt.Errorf("a description is required"))
	}
	due, err := contas.ParseDate(c.due)
	if err != nil {
		return fail(err)
	}

	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	next, bills, err := contas.AddPurchaseInstallments(s, flagArgsJoined(f), due, contas.M(c.amount, ""), c.count, c.account, c.category)
	if err != nil {
		return fail(err)
	}
	if err := saveState(next); err != nil {
		return fail(err)
	}
	fmt.Printf("Added %d installments, first due %s\n", len(bills), bills[0].DueDate)
	return subcommands.ExitSuccess
}
