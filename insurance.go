package contas

import "fmt"

// InsuranceInstallment is one parcela of a policy's premium.
type InsuranceInstallment struct {
	Number        int    `json:"number"`
	DueDate       Date   `json:"dueDate"`
	Amount        Money  `json:"amount"`
	Paid          bool   `json:"paid"`
	TransactionID string `json:"transactionId,omitempty"`
}

// InsurancePolicy is a vehicle insurance policy: a lump-sum premium paid in
// parcelas and expensed straight-line across the coverage window.
type InsurancePolicy struct {
	ID            string                 `json:"id"`
	VehicleID     string                 `json:"vehicleId,omitempty"`
	TotalPremium  Money                  `json:"totalPremium"`
	Installments  []InsuranceInstallment `json:"installments"`
	CoverageStart Date                   `json:"coverageStart"`
	CoverageEnd   Date                   `json:"coverageEnd"`
}

// Installment returns the parcela with the given number, or nil.
func (p *InsurancePolicy) Installment(n int) *InsuranceInstallment {
	for i := range p.Installments {
		if p.Installments[i].Number == n {
			return &p.Installments[i]
		}
	}
	return nil
}

// MarkPaid records a payment transaction against parcela n.
func (p *InsurancePolicy) MarkPaid(n int, transactionID string) error {
	inst := p.Installment(n)
	if inst == nil {
		return fmt.Errorf("policy %s has no installment %d", p.ID, n)
	}
	inst.Paid = true
	inst.TransactionID = transactionID
	return nil
}

// UnmarkPaid reverses MarkPaid for parcela n.
func (p *InsurancePolicy) UnmarkPaid(n int) error {
	inst := p.Installment(n)
	if inst == nil {
		return fmt.Errorf("policy %s has no installment %d", p.ID, n)
	}
	inst.Paid = false
	inst.TransactionID = ""
	return nil
}

// PaidCount derives the number of paid parcelas from linked transactions.
func (p *InsurancePolicy) PaidCount(transactions []Transaction) int {
	count := 0
	for _, inst := range p.Installments {
		if p.paymentFor(inst.Number, transactions) != nil {
			count++
		}
	}
	return count
}

// paymentFor finds the ledger transaction linked to parcela n, or nil.
func (p *InsurancePolicy) paymentFor(n int, transactions []Transaction) *Transaction {
	key := seguroParcelaID(p.ID, n)
	for i := range transactions {
		if transactions[i].Links.ParcelaID == key {
			return &transactions[i]
		}
	}
	return nil
}
