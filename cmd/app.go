// Package cmd implements the CLI application to manage personal finances.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rpaludo/contas"
)

// Commands in registration order. A main package iterates this slice and
// registers each one on its commander.
var Commands = []subcommands.Command{
	&balanceCmd{},
	&billsCmd{},
	&payCmd{},
	&unpayCmd{},
	&excludeCmd{},
	&overrideCmd{},
	&addBillCmd{},
	&installmentsCmd{},
	&scheduleCmd{},
	&rateCmd{},
	&accrualCmd{},
	&importCmd{},
	&reviewCmd{},
	&commitCmd{},
	&discardCmd{},
	&rulesCmd{},
	&suggestCmd{},
	&summaryCmd{},
	&exportCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", ".contas", "Path to the data folder")
var fixedDueDay = flag.Int("fixed-due-day", contas.DefaultGeneratorOptions().FixedDueDay, "Due day for fixed expense estimates")
var variableDueDay = flag.Int("variable-due-day", contas.DefaultGeneratorOptions().VariableDueDay, "Due day for variable expense estimates")

func genOptions() contas.GeneratorOptions {
	opts := contas.DefaultGeneratorOptions()
	opts.FixedDueDay = *fixedDueDay
	opts.VariableDueDay = *variableDueDay
	return opts
}

// loadState builds the full snapshot from the app data folder. A folder that
// does not exist yet loads as an empty ledger.
func loadState() (*contas.LedgerState, error) {
	store, err := contas.NewDirStore(*dataDir)
	if err != nil {
		return nil, err
	}
	return contas.LoadState(store)
}

// saveState replaces the app data folder content with the snapshot.
func saveState(s *contas.LedgerState) error {
	store, err := contas.NewDirStore(*dataDir)
	if err != nil {
		return err
	}
	return contas.SaveState(store, s)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be built.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// flagArgsJoined joins the positional arguments into a free-text value.
func flagArgsJoined(f *flag.FlagSet) string { return strings.Join(f.Args(), " ") }

// fail prints the error and maps it to the commander's failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
