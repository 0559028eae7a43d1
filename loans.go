package contas

import (
	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive       LoanStatus = "active"
	LoanPaidOff      LoanStatus = "paid_off"
	LoanPendingSetup LoanStatus = "pending_setup"
)

// Loan is a fixed-installment (PRICE) loan. Financial terms are immutable once
// active; reconfiguring resets the status to pending_setup. The number of paid
// installments is never stored, it is derived from linked transactions.
type Loan struct {
	ID              string          `json:"id"`
	Name            string          `json:"name,omitempty"`
	TotalPrincipal  decimal.Decimal `json:"totalPrincipal"`
	Installment     decimal.Decimal `json:"installmentAmount"`
	MonthlyRate     decimal.Decimal `json:"monthlyRate"`
	TermMonths      int             `json:"termMonths"`
	Start           Date            `json:"startDate"`
	Status          LoanStatus      `json:"status"`
	LinkedAccountID string          `json:"linkedAccountId,omitempty"`
}

// InstallmentDue returns the due date of installment n (1-based): the start
// date shifted by n months.
func (l Loan) InstallmentDue(n int) Date { return l.Start.AddMonth(n) }

// PaidInstallments returns the set of installment numbers covered by a payment
// transaction, derived solely from links.
func (l Loan) PaidInstallments(transactions []Transaction) map[int]string {
	paid := make(map[int]string)
	for _, tx := range transactions {
		if tx.Links.LoanID != l.ID || tx.Links.ParcelaID == "" {
			continue
		}
		for n := 1; n <= l.TermMonths; n++ {
			if tx.Links.ParcelaID == loanParcelaID(n) {
				paid[n] = tx.ID
				break
			}
		}
	}
	return paid
}

// AmountPaid sums the linked payment transactions with date at or before asOf.
func (l Loan) AmountPaid(transactions []Transaction, asOf Date) decimal.Decimal {
	if asOf.IsZero() {
		asOf = openEnd
	}
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Links.LoanID != l.ID || tx.Links.ParcelaID == "" {
			continue
		}
		if tx.Date.After(asOf) {
			continue
		}
		total = total.Add(tx.Amount.Decimal())
	}
	return total
}
