package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/rpaludo/contas"
	"github.com/rpaludo/contas/renderer"
)

// rulesCmd holds the flags for the 'rules' subcommand.
type rulesCmd struct {
	add         string
	remove      string
	category    string
	operation   string
	description string
}

func (*rulesCmd) Name() string     { return "rules" }
func (*rulesCmd) Synopsis() string { return "list and edit statement standardization rules" }
func (*rulesCmd) Usage() string {
	return `cta rules [-add <pattern> [-c <category>] [-o <operation>] [-desc <template>]] [-rm <rule-id>]

  Without flags, lists the standardization rules in order of precedence.
  -add appends a rule matching descriptions that contain the pattern
  (case-insensitive); -rm removes a rule by id.
`
}

func (c *rulesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Pattern of a new rule to append")
	f.StringVar(&c.remove, "rm", "", "Id of a rule to remove")
	f.StringVar(&c.category, "c", "", "Category the new rule assigns")
	f.StringVar(&c.operation, "o", "", "Operation type the new rule assigns")
	f.StringVar(&c.description, "desc", "", "Description the new rule assigns")
}

func (c *rulesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadState()
	if err != nil {
		return fail(err)
	}

	switch {
	case c.add != "":
		rule := contas.StandardizationRule{
			ID:                  uuid.NewString(),
			Pattern:             c.add,
			CategoryID:          c.category,
			Operation:           contas.OperationType(c.operation),
			DescriptionTemplate: c.description,
		}
		if rule.CategoryID != "" && s.Category(rule.CategoryID) == nil {
			return fail(fmt.Errorf("unknown category %q", rule.CategoryID))
		}
		next := s.Clone()
		next.Rules = append(next.Rules, rule)
		if err := saveState(next); err != nil {
			return fail(err)
		}
		fmt.Printf("Added rule %s\n", rule.ID)
		return subcommands.ExitSuccess
	case c.remove != "":
		next := s.Clone()
		kept := next.Rules[:0]
		for _, rule := range next.Rules {
			if rule.ID != c.remove {
				kept = append(kept, rule)
			}
		}
		if len(kept) == len(next.Rules) {
			return fail(fmt.Errorf("unknown rule %q", c.remove))
		}
		next.Rules = kept
		if err := saveState(next); err != nil {
			return fail(err)
		}
		fmt.Printf("Removed rule %s\n", c.remove)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.Rules(s.Rules))
	return subcommands.ExitSuccess
}
