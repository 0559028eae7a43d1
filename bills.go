package contas

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SourceType is the serialized tag of an obligation source.
type SourceType string

const (
	SourceLoanInstallment      SourceType = "loan_installment"
	SourceInsuranceInstallment SourceType = "insurance_installment"
	SourceFixedExpense         SourceType = "fixed_expense"
	SourceVariableExpense      SourceType = "variable_expense"
	SourceAdHoc                SourceType = "ad_hoc"
	SourceExternal             SourceType = "external_expense"
)

// ObligationSource is the closed set of things a bill can be generated from.
// Consumers switch exhaustively on the concrete type, so adding a new kind of
// obligation is a compile-time-checked change.
type ObligationSource interface {
	// Kind returns the serialized tag of the source.
	Kind() SourceType
	// BillID returns the deterministic bill id for the source in a month.
	// Stable across re-generation, it is the key override lookup depends on.
	BillID(m Month) string
}

// LoanInstallmentSource is installment Number of a loan.
type LoanInstallmentSource struct {
	LoanID string
	Number int
}

func (s LoanInstallmentSource) Kind() SourceType { return SourceLoanInstallment }
func (s LoanInstallmentSource) BillID(m Month) string {
	return fmt.Sprintf("loan_%s_%d_%s", s.LoanID, s.Number, m.Compact())
}

// InsuranceInstallmentSource is parcela Number of an insurance policy.
type InsuranceInstallmentSource struct {
	PolicyID string
	Number   int
}

func (s InsuranceInstallmentSource) Kind() SourceType { return SourceInsuranceInstallment }
func (s InsuranceInstallmentSource) BillID(m Month) string {
	return fmt.Sprintf("seguro_%s_%d_%s", s.PolicyID, s.Number, m.Compact())
}

// FixedExpenseSource is the monthly estimate for a fixed-nature category.
type FixedExpenseSource struct {
	CategoryID string
}

func (s FixedExpenseSource) Kind() SourceType { return SourceFixedExpense }
func (s FixedExpenseSource) BillID(m Month) string {
	return fmt.Sprintf("fixed_%s_%s", s.CategoryID, m.Compact())
}

// VariableExpenseSource is the monthly estimate for a variable-nature category.
type VariableExpenseSource struct {
	CategoryID string
}

func (s VariableExpenseSource) Kind() SourceType { return SourceVariableExpense }
func (s VariableExpenseSource) BillID(m Month) string {
	return fmt.Sprintf("variable_%s_%s", s.CategoryID, m.Compact())
}

// AdHocSource is a free-form user-entered bill; its id is not deterministic.
type AdHocSource struct {
	ID string
}

func (s AdHocSource) Kind() SourceType { return SourceAdHoc }
func (s AdHocSource) BillID(Month) string {
	if s.ID != "" {
		return s.ID
	}
	return uuid.NewString()
}

// ExternalExpenseSource is an expense transaction recorded outside the bill
// tracker, surfaced in the month's view as an already-paid entry. It carries
// no template and is never persisted as a bill.
type ExternalExpenseSource struct {
	TransactionID string
}

func (s ExternalExpenseSource) Kind() SourceType    { return SourceExternal }
func (s ExternalExpenseSource) BillID(Month) string { return s.TransactionID }

// OperationFor returns the ledger operation type a payment of this source creates.
func OperationFor(s ObligationSource) OperationType {
	switch s.(type) {
	case LoanInstallmentSource:
		return OpLoanPayment
	case InsuranceInstallmentSource:
		return OpVehicle
	case FixedExpenseSource, VariableExpenseSource, AdHocSource, ExternalExpenseSource:
		return OpExpense
	default:
		panic(fmt.Sprintf("unknown obligation source %T", s))
	}
}

// Bill is a materialized expected payment for a month.
//
// Ad-hoc bills are fully persisted. Generated-template bills are derived on
// every view; only the user's delta (exclusion, amount override, payment
// linkage) is persisted under the same deterministic id, so regenerating the
// template and re-applying the delta is idempotent.
type Bill struct {
	ID                  string     `json:"id"`
	Description         string     `json:"description"`
	DueDate             Date       `json:"dueDate"`
	ExpectedAmount      Money      `json:"expectedAmount"`
	Paid                bool       `json:"isPaid"`
	PaymentDate         Date       `json:"paymentDate,omitzero"`
	TransactionID       string     `json:"transactionId,omitempty"`
	SourceType          SourceType `json:"sourceType"`
	SourceRef           string     `json:"sourceRef,omitempty"`
	ParcelaNumber       int        `json:"parcelaNumber,omitempty"`
	SuggestedAccountID  string     `json:"suggestedAccountId,omitempty"`
	SuggestedCategoryID string     `json:"suggestedCategoryId,omitempty"`
	Excluded            bool       `json:"isExcluded,omitempty"`
}

// Source reconstructs the tagged union from the persisted fields.
func (b Bill) Source() (ObligationSource, error) {
	switch b.SourceType {
	case SourceLoanInstallment:
		return LoanInstallmentSource{LoanID: b.SourceRef, Number: b.ParcelaNumber}, nil
	case SourceInsuranceInstallment:
		return InsuranceInstallmentSource{PolicyID: b.SourceRef, Number: b.ParcelaNumber}, nil
	case SourceFixedExpense:
		return FixedExpenseSource{CategoryID: b.SourceRef}, nil
	case SourceVariableExpense:
		return VariableExpenseSource{CategoryID: b.SourceRef}, nil
	case SourceAdHoc:
		return AdHocSource{ID: b.ID}, nil
	case SourceExternal:
		return ExternalExpenseSource{TransactionID: b.TransactionID}, nil
	default:
		return nil, fmt.Errorf("bill %s has unknown source type %q", b.ID, b.SourceType)
	}
}

// IsTemplate reports whether the bill is derived from a recurring source
// (everything except ad-hoc entries and external expenses).
func (b Bill) IsTemplate() bool {
	return b.SourceType != SourceAdHoc && b.SourceType != SourceExternal
}

// NewAdHocBill creates a fully persisted free-form bill.
func NewAdHocBill(description string, due Date, amount Money) Bill {
	return Bill{
		ID:             uuid.NewString(),
		Description:    description,
		DueDate:        due,
		ExpectedAmount: amount,
		SourceType:     SourceAdHoc,
	}
}

// ParseBillID splits a deterministic template id back into its parts.
// Recognized grammars: loan_{ref}_{n}_{yyyyMM}, seguro_{ref}_{n}_{yyyyMM},
// fixed_{ref}_{yyyyMM}, variable_{ref}_{yyyyMM}.
func ParseBillID(id string) (SourceType, string, int, bool) {
	parts := strings.Split(id, "_")
	if len(parts) < 3 {
		return "", "", 0, false
	}
	switch parts[0] {
	case "loan", "seguro":
		if len(parts) < 4 {
			return "", "", 0, false
		}
		n, err := strconv.Atoi(parts[len(parts)-2])
		if err != nil {
			return "", "", 0, false
		}
		ref := strings.Join(parts[1:len(parts)-2], "_")
		if parts[0] == "loan" {
			return SourceLoanInstallment, ref, n, true
		}
		return SourceInsuranceInstallment, ref, n, true
	case "fixed", "variable":
		ref := strings.Join(parts[1:len(parts)-1], "_")
		if parts[0] == "fixed" {
			return SourceFixedExpense, ref, 0, true
		}
		return SourceVariableExpense, ref, 0, true
	default:
		return "", "", 0, false
	}
}
