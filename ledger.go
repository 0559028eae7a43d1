package contas

import (
	"fmt"
	"slices"
)

// LedgerState is the full snapshot every engine operates on. Engines are pure
// functions over an explicit snapshot: commands take a state in, compute the
// whole mutation, and return a new state for the caller to persist in a single
// replacement write. Nothing here reads ambient globals.
type LedgerState struct {
	Accounts     []Account             `json:"accounts"`
	Categories   []Category            `json:"categories"`
	Transactions []Transaction         `json:"transactions"`
	Loans        []Loan                `json:"loans"`
	Policies     []InsurancePolicy     `json:"policies"`
	Bills        []Bill                `json:"bills"`
	Rules        []StandardizationRule `json:"rules"`
	Statements   []ImportedStatement   `json:"statements"`
}

// NewLedgerState creates an empty snapshot.
func NewLedgerState() *LedgerState { return &LedgerState{} }

// Clone returns a deep copy of the state. Commands mutate the copy and return
// it, leaving the caller's snapshot untouched on failure.
func (s *LedgerState) Clone() *LedgerState {
	c := &LedgerState{
		Accounts:     slices.Clone(s.Accounts),
		Categories:   slices.Clone(s.Categories),
		Transactions: slices.Clone(s.Transactions),
		Loans:        slices.Clone(s.Loans),
		Policies:     slices.Clone(s.Policies),
		Bills:        slices.Clone(s.Bills),
		Rules:        slices.Clone(s.Rules),
		Statements:   slices.Clone(s.Statements),
	}
	for i := range c.Policies {
		c.Policies[i].Installments = slices.Clone(s.Policies[i].Installments)
	}
	for i := range c.Statements {
		c.Statements[i].Transactions = slices.Clone(s.Statements[i].Transactions)
	}
	return c
}

// Account returns the account with the given id, or nil if unknown.
func (s *LedgerState) Account(id string) *Account {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return &s.Accounts[i]
		}
	}
	return nil
}

// Category returns the category with the given id, or nil.
func (s *LedgerState) Category(id string) *Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}

// Loan returns the loan with the given id, or nil.
func (s *LedgerState) Loan(id string) *Loan {
	for i := range s.Loans {
		if s.Loans[i].ID == id {
			return &s.Loans[i]
		}
	}
	return nil
}

// Policy returns the insurance policy with the given id, or nil.
func (s *LedgerState) Policy(id string) *InsurancePolicy {
	for i := range s.Policies {
		if s.Policies[i].ID == id {
			return &s.Policies[i]
		}
	}
	return nil
}

// Transaction returns the transaction with the given id, or nil.
func (s *LedgerState) Transaction(id string) *Transaction {
	for i := range s.Transactions {
		if s.Transactions[i].ID == id {
			return &s.Transactions[i]
		}
	}
	return nil
}

// Bill returns the persisted bill with the given id, or nil.
func (s *LedgerState) Bill(id string) *Bill {
	for i := range s.Bills {
		if s.Bills[i].ID == id {
			return &s.Bills[i]
		}
	}
	return nil
}

// Statement returns the staged statement with the given id, or nil.
func (s *LedgerState) Statement(id string) *ImportedStatement {
	for i := range s.Statements {
		if s.Statements[i].ID == id {
			return &s.Statements[i]
		}
	}
	return nil
}

// AddAccount registers an account and anchors its opening balance with an
// initial_balance transaction. The opening balance is set once and never
// mutated afterward.
func (s *LedgerState) AddAccount(a Account) error {
	if a.ID == "" {
		return fmt.Errorf("account id is missing")
	}
	if s.Account(a.ID) != nil {
		return fmt.Errorf("account %q already exists", a.ID)
	}
	if _, err := ParseAccountType(string(a.Type)); err != nil {
		return err
	}
	s.Accounts = append(s.Accounts, a)
	if !a.InitialBalance.IsZero() {
		// A positive opening balance must read back as positive through the
		// balance fold, which inverts flows on liability accounts.
		flow := FlowIn
		if a.InitialBalance.IsNegative() {
			flow = FlowOut
		}
		if a.Type.IsLiability() {
			if flow == FlowIn {
				flow = FlowOut
			} else {
				flow = FlowIn
			}
		}
		tx := NewTransaction(Today(), a.ID, flow, OpInitialBalance, a.InitialBalance.Abs(), "Saldo inicial", SourceManual)
		s.Transactions = append(s.Transactions, tx)
	}
	return nil
}

// RemoveAccount deletes an account. Refused while transactions reference it.
func (s *LedgerState) RemoveAccount(id string) error {
	if s.Account(id) == nil {
		return fmt.Errorf("account %q not found", id)
	}
	for _, tx := range s.Transactions {
		if tx.AccountID == id {
			return fmt.Errorf("account %q still has transactions", id)
		}
	}
	s.Accounts = slices.DeleteFunc(s.Accounts, func(a Account) bool { return a.ID == id })
	return nil
}

// AddTransaction validates and appends a transaction.
func (s *LedgerState) AddTransaction(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if s.Account(tx.AccountID) == nil {
		return fmt.Errorf("transaction %s references unknown account %q", tx.ID, tx.AccountID)
	}
	if s.Transaction(tx.ID) != nil {
		return fmt.Errorf("transaction %s already exists", tx.ID)
	}
	s.Transactions = append(s.Transactions, tx)
	return nil
}

// RemoveTransaction deletes a transaction by id.
func (s *LedgerState) RemoveTransaction(id string) error {
	before := len(s.Transactions)
	s.Transactions = slices.DeleteFunc(s.Transactions, func(t Transaction) bool { return t.ID == id })
	if len(s.Transactions) == before {
		return fmt.Errorf("transaction %q not found", id)
	}
	return nil
}

// UpsertBill persists a bill record, replacing any record with the same id.
func (s *LedgerState) UpsertBill(b Bill) {
	for i := range s.Bills {
		if s.Bills[i].ID == b.ID {
			s.Bills[i] = b
			return
		}
	}
	s.Bills = append(s.Bills, b)
}

// RemoveBill deletes a persisted bill record by id.
func (s *LedgerState) RemoveBill(id string) {
	s.Bills = slices.DeleteFunc(s.Bills, func(b Bill) bool { return b.ID == id })
}

// AccountTransactions returns the account's transactions dated at or before
// the given day, ascending by date.
func (s *LedgerState) AccountTransactions(accountID string, until Date) []Transaction {
	if until.IsZero() {
		until = openEnd
	}
	var out []Transaction
	for _, tx := range s.Transactions {
		if tx.AccountID == accountID && !tx.Date.After(until) {
			out = append(out, tx)
		}
	}
	slices.SortStableFunc(out, func(a, b Transaction) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})
	return out
}

// CategorySpend sums expense transactions of a category inside a month.
func (s *LedgerState) CategorySpend(categoryID string, m Month) Money {
	var total Money
	for _, tx := range s.Transactions {
		if tx.CategoryID != categoryID || !m.Contains(tx.Date) {
			continue
		}
		if tx.Operation != OpExpense && tx.Operation != OpVehicle && tx.Operation != OpLoanPayment {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}
