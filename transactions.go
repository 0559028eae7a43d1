package contas

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Flow is the cash direction of a transaction relative to its account.
type Flow string

const (
	FlowIn          Flow = "in"
	FlowOut         Flow = "out"
	FlowTransferIn  Flow = "transfer_in"
	FlowTransferOut Flow = "transfer_out"
)

// Inbound reports whether the flow adds money to an ordinary account.
func (f Flow) Inbound() bool { return f == FlowIn || f == FlowTransferIn }

// OperationType classifies what a transaction represents.
type OperationType string

const (
	OpIncome           OperationType = "income"
	OpExpense          OperationType = "expense"
	OpTransfer         OperationType = "transfer"
	OpDeposit          OperationType = "deposit"
	OpWithdrawal       OperationType = "withdrawal"
	OpLoanPayment      OperationType = "loan_payment"
	OpLoanDisbursement OperationType = "loan_disbursement"
	OpVehicle          OperationType = "vehicle"
	OpYield            OperationType = "yield"
	OpInitialBalance   OperationType = "initial_balance"
)

// Transaction sources recorded in meta.
const (
	SourceManual      = "manual"
	SourceBillTracker = "bill_tracker"
	SourceImport      = "statement_import"
)

// Links ties a transaction to the entity that originated it. Paid-installment
// counts for loans and policies are always derived from these links, never from
// stored counters.
type Links struct {
	LoanID               string `json:"loanId,omitempty"`
	ParcelaID            string `json:"parcelaId,omitempty"`
	InvestmentID         string `json:"investmentId,omitempty"`
	TransferGroupID      string `json:"transferGroupId,omitempty"`
	VehicleTransactionID string `json:"vehicleTransactionId,omitempty"`
}

// IsZero reports whether no link is set.
func (l Links) IsZero() bool { return l == Links{} }

// Transaction is a single record in the ledger. Immutable once created except
// for categorization edits and the Conciliated flag.
type Transaction struct {
	ID          string        `json:"id"`
	Date        Date          `json:"date"`
	AccountID   string        `json:"accountId"`
	Flow        Flow          `json:"flow"`
	Operation   OperationType `json:"operationType"`
	Amount      Money         `json:"amount"`
	CategoryID  string        `json:"categoryId,omitempty"`
	Description string        `json:"description"`
	Links       Links         `json:"links,omitempty"`
	Conciliated bool          `json:"conciliated,omitempty"`
	Source      string        `json:"source,omitempty"`
	CreatedAt   time.Time     `json:"createdAt,omitempty"`
}

// NewTransaction creates a transaction with a fresh id and creation timestamp.
func NewTransaction(day Date, accountID string, flow Flow, op OperationType, amount Money, description, source string) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Date:        day,
		AccountID:   accountID,
		Flow:        flow,
		Operation:   op,
		Amount:      amount,
		Description: description,
		Source:      source,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate checks the transaction for structural correctness.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction id is missing")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction %s has no date", t.ID)
	}
	if t.AccountID == "" {
		return fmt.Errorf("transaction %s has no account", t.ID)
	}
	switch t.Flow {
	case FlowIn, FlowOut, FlowTransferIn, FlowTransferOut:
	default:
		return fmt.Errorf("transaction %s has unknown flow %q", t.ID, t.Flow)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction %s amount must be non-negative, got %s", t.ID, t.Amount)
	}
	return nil
}

// loanParcelaID is the ParcelaID recorded on a loan installment payment.
func loanParcelaID(n int) string { return fmt.Sprintf("%d", n) }

// seguroParcelaID is the ParcelaID recorded on an insurance parcela payment.
func seguroParcelaID(policyID string, n int) string {
	return fmt.Sprintf("%s_%d", policyID, n)
}
