package contas

import "strings"

// StandardizationRule auto-fills category, operation type and description for
// imported transactions whose original description contains the pattern.
// Rules apply in list order; the first match wins.
type StandardizationRule struct {
	ID                  string        `json:"id"`
	Pattern             string        `json:"pattern"`
	CategoryID          string        `json:"categoryId,omitempty"`
	Operation           OperationType `json:"operationType,omitempty"`
	DescriptionTemplate string        `json:"descriptionTemplate,omitempty"`
}

// Matches reports whether the rule's pattern is a case-insensitive substring
// of the description.
func (r StandardizationRule) Matches(description string) bool {
	if r.Pattern == "" {
		return false
	}
	return strings.Contains(strings.ToLower(description), strings.ToLower(r.Pattern))
}
