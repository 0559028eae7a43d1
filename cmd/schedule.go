package cmd

import (
	"context"
	"flag"
	"fmt"
	"math"

	"github.com/google/subcommands"
	"github.com/rpaludo/contas"
	"github.com/rpaludo/contas/renderer"
)

// scheduleCmd holds the flags for the 'schedule' subcommand.
type scheduleCmd struct{}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display a loan's amortization schedule" }
func (*scheduleCmd) Usage() string {
	return `cta schedule <loan-id>

  Displays the full amortization schedule of a loan: interest, principal
  and remaining debt per installment.
`
}

func (*scheduleCmd) SetFlags(_ *flag.FlagSet) {}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("expected exactly one loan id, got %d arguments", f.NArg()))
	}
	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	loan := s.Loan(f.Arg(0))
	if loan == nil {
		return fail(fmt.Errorf("unknown loan %q", f.Arg(0)))
	}
	printMarkdown(renderer.Schedule(*loan, contas.Schedule(*loan)))
	return subcommands.ExitSuccess
}

// rateCmd holds the flags for the 'rate' subcommand.
type rateCmd struct {
	principal float64
	payment   float64
	periods   int
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "solve the implicit monthly interest rate of a loan" }
func (*rateCmd) Usage() string {
	return `cta rate -p <principal> -v <payment> -n <months>

  Solves the monthly interest rate implied by a fixed-payment loan. Useful
  when a contract states the installment but not the rate.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.principal, "p", 0, "Financed principal")
	f.Float64Var(&c.payment, "v", 0, "Fixed monthly payment")
	f.IntVar(&c.periods, "n", 0, "Number of monthly payments")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rate, err := contas.SolveMonthlyRate(c.principal, c.payment, c.periods)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Monthly rate: %.4f%% (%.2f%% per year)\n", rate*100, (math.Pow(1+rate, 12)-1)*100)
	return subcommands.ExitSuccess
}
