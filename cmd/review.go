package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/rpaludo/contas"
	"github.com/rpaludo/contas/renderer"
)

// reviewCmd holds the flags for the 'review' subcommand.
type reviewCmd struct {
	skip     string
	unskip   string
	category string
	lines    string
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "review a staged statement before commit" }
func (*reviewCmd) Usage() string {
	return `cta review [-skip 1,2] [-unskip 3] [-c <category> -lines 4,5] [<statement-id>]

  Without a statement id, lists every imported statement and its status.
  With one, displays the staged statement and optionally edits its lines:
  mark lines to skip (typically flagged duplicates), unmark them, or
  assign a category to a set of lines. Line numbers are 1-based as
  displayed.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.skip, "skip", "", "Comma separated line numbers to skip on commit")
	f.StringVar(&c.unskip, "unskip", "", "Comma separated line numbers to restore")
	f.StringVar(&c.category, "c", "", "Category id to assign to the -lines lines")
	f.StringVar(&c.lines, "lines", "", "Comma separated line numbers for -c")
}

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		return fail(fmt.Errorf("expected at most one statement id, got %d arguments", f.NArg()))
	}
	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	if f.NArg() == 0 {
		printMarkdown(renderer.Statements(s.Statements))
		return subcommands.ExitSuccess
	}
	statement := s.Statement(f.Arg(0))
	if statement == nil {
		return fail(fmt.Errorf("unknown statement %q", f.Arg(0)))
	}

	edited := false
	reviewed := append([]contas.ImportedTransaction(nil), statement.Transactions...)
	apply := func(spec string, fn func(*contas.ImportedTransaction)) error {
		if spec == "" {
			return nil
		}
		for _, field := range strings.Split(spec, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil || n < 1 || n > len(reviewed) {
				return fmt.Errorf("invalid line number %q", field)
			}
			fn(&reviewed[n-1])
			edited = true
		}
		return nil
	}
	if err := apply(c.skip, func(t *contas.ImportedTransaction) { t.Skip = true }); err != nil {
		return fail(err)
	}
	if err := apply(c.unskip, func(t *contas.ImportedTransaction) { t.Skip = false }); err != nil {
		return fail(err)
	}
	if c.category != "" {
		if s.Category(c.category) == nil {
			return fail(fmt.Errorf("unknown category %q", c.category))
		}
		if err := apply(c.lines, func(t *contas.ImportedTransaction) { t.CategoryID = c.category }); err != nil {
			return fail(err)
		}
	}

	if edited {
		next, err := contas.ReviewStagedTransactions(s, statement.ID, reviewed)
		if err != nil {
			return fail(err)
		}
		if err := saveState(next); err != nil {
			return fail(err)
		}
		s = next
		statement = s.Statement(f.Arg(0))
	}
	printMarkdown(renderer.Review(*statement))
	return subcommands.ExitSuccess
}

// commitCmd holds the flags for the 'commit' subcommand.
type commitCmd struct{}

func (*commitCmd) Name() string     { return "commit" }
func (*commitCmd) Synopsis() string { return "commit a reviewed statement to the ledger" }
func (*commitCmd) Usage() string {
	return `cta commit <statement-id>

  Commits a staged statement: non-skipped lines become ledger
  transactions, skipped duplicates conciliate their ledger match, and the
  statement is marked as accounted for.
`
}

func (*commitCmd) SetFlags(_ *flag.FlagSet) {}

func (c *commitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("expected exactly one statement id, got %d arguments", f.NArg()))
	}
	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	next, err := contas.CommitStatement(s, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := saveState(next); err != nil {
		return fail(err)
	}
	fmt.Printf("Committed statement %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}

// discardCmd holds the flags for the 'discard' subcommand.
type discardCmd struct{}

func (*discardCmd) Name() string     { return "discard" }
func (*discardCmd) Synopsis() string { return "discard a staged statement" }
func (*discardCmd) Usage() string {
	return `cta discard <statement-id>

  Drops a staged statement without touching the ledger.
`
}

func (*discardCmd) SetFlags(_ *flag.FlagSet) {}

func (c *discardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("expected exactly one statement id, got %d arguments", f.NArg()))
	}
	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	next, err := contas.DiscardStatement(s, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := saveState(next); err != nil {
		return fail(err)
	}
	fmt.Printf("Discarded statement %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}
