package contas

import (
	"testing"

	"github.com/shopspring/decimal"
)

// day parses an ISO date or fails the test.
func day(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// month parses a "2006-01" month or fails the test.
func month(t *testing.T, s string) Month {
	t.Helper()
	m, err := ParseMonth(s)
	if err != nil {
		t.Fatalf("bad test month %q: %v", s, err)
	}
	return m
}

// brl builds a BRL money value.
func brl(v float64) Money { return M(v, DefaultCurrency) }

// dec builds a decimal from a string literal or panics; test fixtures only.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// testState builds a snapshot with one checking account, one credit card, two
// estimate categories, an active loan and an insurance policy.
func testState(t *testing.T) *LedgerState {
	t.Helper()
	s := NewLedgerState()
	s.Accounts = []Account{
		{ID: "cc", Name: "Conta Corrente", Type: AccountChecking, Currency: "BRL"},
		{ID: "card", Name: "Cartão", Type: AccountCreditCard, Currency: "BRL"},
	}
	s.Categories = []Category{
		{ID: "aluguel", Name: "Aluguel", Nature: NatureFixed},
		{ID: "alim", Name: "Alimentação", Nature: NatureVariable},
		{ID: "lazer", Name: "Lazer"},
	}
	s.Loans = []Loan{{
		ID:              "fin1",
		Name:            "Financiamento",
		TotalPrincipal:  dec("12000"),
		Installment:     dec("1117.23"),
		MonthlyRate:     dec("0.02"),
		TermMonths:      12,
		Start:           day(t, "2024-01-05"),
		Status:          LoanActive,
		LinkedAccountID: "cc",
	}}
	s.Policies = []InsurancePolicy{{
		ID:            "seg1",
		VehicleID:     "car1",
		TotalPremium:  brl(1200),
		CoverageStart: day(t, "2024-02-01"),
		CoverageEnd:   day(t, "2025-01-31"),
		Installments: []InsuranceInstallment{
			{Number: 1, DueDate: day(t, "2024-02-10"), Amount: brl(300)},
			{Number: 2, DueDate: day(t, "2024-03-10"), Amount: brl(300)},
			{Number: 3, DueDate: day(t, "2024-04-10"), Amount: brl(300)},
			{Number: 4, DueDate: day(t, "2024-05-10"), Amount: brl(300)},
		},
	}}
	return s
}

// addTx appends a simple transaction to the state or fails the test.
func addTx(t *testing.T, s *LedgerState, id, date, accountID string, flow Flow, op OperationType, amount float64) {
	t.Helper()
	tx := Transaction{
		ID:          id,
		Date:        day(t, date),
		AccountID:   accountID,
		Flow:        flow,
		Operation:   op,
		Amount:      brl(amount),
		Description: id,
	}
	if err := s.AddTransaction(tx); err != nil {
		t.Fatalf("addTx(%s): %v", id, err)
	}
}

// billIDs extracts the ids of a bill list in order.
func billIDs(bills []Bill) []string {
	ids := make([]string, len(bills))
	for i, b := range bills {
		ids[i] = b.ID
	}
	return ids
}
