package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/rpaludo/contas"
	"github.com/rpaludo/contas/renderer"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	account string
	format  string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "stage a bank statement file for review" }
func (*importCmd) Usage() string {
	return `cta import -a <account> [-f <format>] <file>

  Parses a bank statement (delimited text, OFX or JSON), applies the
  standardization rules, flags potential duplicates against the ledger and
  stages the result for review. Nothing touches the ledger until commit.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account the statement belongs to")
	f.StringVar(&c.format, "f", "auto", "Statement format: auto, delimited, ofx or json")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("expected exactly one statement file, got %d arguments", f.NArg()))
	}
	if c.account == "" {
		return fail(fmt.Errorf("an -a account is required"))
	}
	format, err := contas.ParseStatementFormat(c.format)
	if err != nil {
		return fail(err)
	}
	content, err := os.ReadFile(f.Arg(0))
	if err != nil {
		return fail(err)
	}

	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	if s.Account(c.account) == nil {
		return fail(fmt.Errorf("unknown account %q", c.account))
	}
	next, statement, err := contas.ImportStatement(s, c.account, filepath.Base(f.Arg(0)), string(content), format, contas.ParseOptions{})
	if err != nil {
		return fail(err)
	}
	if err := saveState(next); err != nil {
		return fail(err)
	}
	fmt.Printf("Staged statement %s with %d transactions\n", statement.ID, len(statement.Transactions))
	printMarkdown(renderer.Review(statement))
	return subcommands.ExitSuccess
}
