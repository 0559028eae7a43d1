package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/rpaludo/contas"
	"google.golang.org/genai"
)

// suggestCmd holds the flags for the 'suggest' subcommand.
type suggestCmd struct {
	model string
	limit int
	apply bool
}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "suggest standardization rules from past imports" }
func (*suggestCmd) Usage() string {
	return `cta suggest [-model <name>] [-n <count>] [-apply]

  Sends the uncategorized descriptions of imported transactions to Gemini
  and asks for standardization rule candidates. Suggestions are printed
  for review; with -apply they are appended to the rule list.
`
}

func (c *suggestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "gemini-2.5-flash", "Gemini model to use")
	f.IntVar(&c.limit, "n", 50, "Maximum number of descriptions to send")
	f.BoolVar(&c.apply, "apply", false, "Append the suggested rules to the rule list")
}

// ruleSuggestion is the JSON shape requested from the model.
type ruleSuggestion struct {
	Pattern     string `json:"pattern"`
	CategoryID  string `json:"categoryId"`
	Description string `json:"description"`
}

func (c *suggestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadState()
	if err != nil {
		return fail(err)
	}

	descriptions := uncategorizedDescriptions(s, c.limit)
	if len(descriptions) == 0 {
		fmt.Println("No uncategorized imported transactions to learn from.")
		return subcommands.ExitSuccess
	}
	var categories []string
	for _, cat := range s.Categories {
		categories = append(categories, cat.ID)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: "You classify Brazilian bank statement descriptions. " +
			"Given raw descriptions and the known category ids, propose matching rules as a JSON array of " +
			"{pattern, categoryId, description}: pattern is a case-insensitive substring shared by similar " +
			"descriptions, categoryId one of the known ids, description a short human label in Portuguese. " +
			"Respond with the JSON array only."}}},
		ResponseMIMEType: "application/json",
	}
	chat, err := client.Chats.Create(ctx, c.model, config, nil)
	if err != nil {
		return fail(err)
	}

	prompt := fmt.Sprintf("Known categories: %s\n\nDescriptions:\n%s",
		strings.Join(categories, ", "), strings.Join(descriptions, "\n"))
	resp, err := chat.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return fail(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fail(fmt.Errorf("no response from model %s", c.model))
	}

	var suggestions []ruleSuggestion
	if err := json.Unmarshal([]byte(resp.Candidates[0].Content.Parts[0].Text), &suggestions); err != nil {
		return fail(fmt.Errorf("cannot decode model response: %w", err))
	}

	rules := make([]contas.StandardizationRule, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if suggestion.Pattern == "" || s.Category(suggestion.CategoryID) == nil {
			continue
		}
		rules = append(rules, contas.StandardizationRule{
			ID:                  uuid.NewString(),
			Pattern:             suggestion.Pattern,
			CategoryID:          suggestion.CategoryID,
			DescriptionTemplate: suggestion.Description,
		})
	}
	if len(rules) == 0 {
		fmt.Println("The model produced no usable suggestions.")
		return subcommands.ExitSuccess
	}

	if c.apply {
		next := s.Clone()
		next.Rules = append(next.Rules, rules...)
		if err := saveState(next); err != nil {
			return fail(err)
		}
		fmt.Printf("Appended %d suggested rules\n", len(rules))
		return subcommands.ExitSuccess
	}
	var b strings.Builder
	b.WriteString("# Sugestões de regras\n\n")
	for _, rule := range rules {
		fmt.Fprintf(&b, "- `%s` → %s (%s)\n", rule.Pattern, rule.CategoryID, rule.DescriptionTemplate)
	}
	b.WriteString("\nRun again with -apply to append them.\n")
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// uncategorizedDescriptions collects distinct original descriptions of
// imported transactions that no rule categorized yet.
func uncategorizedDescriptions(s *contas.LedgerState, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(description, categoryID string) {
		if categoryID != "" || description == "" || seen[description] {
			return
		}
		seen[description] = true
		if len(out) < limit {
			out = append(out, description)
		}
	}
	for _, statement := range s.Statements {
		for _, line := range statement.Transactions {
			add(line.OriginalDescription, line.CategoryID)
		}
	}
	for _, tx := range s.Transactions {
		if tx.Source == contas.SourceImport {
			add(tx.Description, tx.CategoryID)
		}
	}
	return out
}
