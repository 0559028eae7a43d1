package contas

// Nature marks how a category's spend recurs month over month. The obligation
// generator materializes one estimate bill per fixed or variable category.
type Nature string

const (
	NatureNone     Nature = ""
	NatureFixed    Nature = "fixed"
	NatureVariable Nature = "variable"
)

// Category labels transactions and drives recurring expense estimates.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Nature Nature `json:"nature,omitempty"`
}
