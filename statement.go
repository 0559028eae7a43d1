package contas

import (
	"time"

	"github.com/google/uuid"
)

// StatementStatus is the lifecycle state of a staged statement.
type StatementStatus string

const (
	StatementPending      StatementStatus = "pending"
	StatementContabilized StatementStatus = "contabilized"
)

// ImportedTransaction is one normalized line of a bank export, staged for
// review. It only becomes a ledger Transaction when the statement is committed.
type ImportedTransaction struct {
	Date                 Date          `json:"date"`
	Amount               Money         `json:"amount"`
	OriginalDescription  string        `json:"originalDescription"`
	Description          string        `json:"description,omitempty"`
	Operation            OperationType `json:"derivedOperationType"`
	CategoryID           string        `json:"categoryId,omitempty"`
	Links                Links         `json:"links,omitempty"`
	IsPotentialDuplicate bool          `json:"isPotentialDuplicate,omitempty"`
	DuplicateOfTxID      string        `json:"duplicateOfTxId,omitempty"`
	Skip                 bool          `json:"skip,omitempty"`
}

// Flow derives the cash direction of the line from its operation type.
func (t ImportedTransaction) Flow() Flow {
	switch t.Operation {
	case OpIncome, OpDeposit, OpYield, OpLoanDisbursement:
		return FlowIn
	case OpTransfer:
		if t.Amount.IsNegative() {
			return FlowTransferOut
		}
		return FlowTransferIn
	default:
		if t.Amount.IsNegative() {
			return FlowOut
		}
		if t.Operation == OpExpense || t.Operation == OpLoanPayment ||
			t.Operation == OpWithdrawal || t.Operation == OpVehicle {
			return FlowOut
		}
		return FlowIn
	}
}

// ImportedStatement is a staged bank export tied to an account. It exists only
// until the user commits or discards it.
type ImportedStatement struct {
	ID           string                `json:"statementId"`
	AccountID    string                `json:"accountId"`
	FileName     string                `json:"fileName,omitempty"`
	ImportedAt   time.Time             `json:"importedAt,omitempty"`
	Transactions []ImportedTransaction `json:"rawTransactions"`
	Status       StatementStatus       `json:"status"`
}

// NewImportedStatement stages a parsed statement for review.
func NewImportedStatement(accountID, fileName string, transactions []ImportedTransaction) ImportedStatement {
	return ImportedStatement{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		FileName:     fileName,
		ImportedAt:   time.Now().UTC(),
		Transactions: transactions,
		Status:       StatementPending,
	}
}
