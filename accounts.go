package contas

import "fmt"

// AccountType classifies an account. Credit cards are liability accounts and
// invert the sign convention of the balance engine.
type AccountType string

const (
	AccountChecking      AccountType = "checking"
	AccountSavings       AccountType = "savings"
	AccountFixedIncome   AccountType = "fixed_income"
	AccountCrypto        AccountType = "crypto"
	AccountEmergencyFund AccountType = "emergency_fund"
	AccountGoal          AccountType = "goal"
	AccountCreditCard    AccountType = "credit_card"
)

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountChecking, AccountSavings, AccountFixedIncome, AccountCrypto,
		AccountEmergencyFund, AccountGoal, AccountCreditCard:
		return AccountType(s), nil
	default:
		return "", fmt.Errorf("unknown account type: %q", s)
	}
}

// IsLiability reports whether balances on this account type represent money owed.
func (t AccountType) IsLiability() bool { return t == AccountCreditCard }

// Account is a user-owned account in the ledger. InitialBalance is the opening
// balance set once at creation; it anchors balance computation through the
// initial_balance transaction created alongside the account.
type Account struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Type           AccountType `json:"type"`
	InitialBalance Money       `json:"initialBalance"`
	Currency       string      `json:"currency,omitempty"`
}

// CurrencyOrDefault returns the account currency, falling back to DefaultCurrency.
func (a Account) CurrencyOrDefault() string {
	if a.Currency == "" {
		return DefaultCurrency
	}
	return a.Currency
}
