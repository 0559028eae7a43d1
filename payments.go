package contas

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Payment failure modes. Payments fail closed: nothing is mutated when any of
// these are returned.
var (
	ErrBillNotFound       = errors.New("bill not found")
	ErrBillAlreadyPaid    = errors.New("bill is already paid")
	ErrBillNotPaid        = errors.New("bill is not paid")
	ErrAccountNotResolved = errors.New("payment account cannot be resolved")
)

// PayOptions tune a bill payment.
type PayOptions struct {
	// AccountID overrides the bill's suggested account.
	AccountID string
	// Date is the payment date; zero means today.
	Date Date
	// Amount overrides the bill's expected amount when non-zero.
	Amount Money
}

// PayBill marks a bill of the given month as paid. Atomically from the
// caller's perspective it: creates the ledger transaction, marks the loan
// installment or insurance parcela paid through its own setter, and persists
// the bill record carrying the new transaction id so regeneration reproduces
// the paid state. The input state is never mutated; the caller swaps in the
// returned state in a single replacement write.
func PayBill(s *LedgerState, billID string, m Month, opts GeneratorOptions, pay PayOptions) (*LedgerState, Transaction, error) {
	bill, ok := findBill(s, billID, m, opts)
	if !ok {
		return nil, Transaction{}, fmt.Errorf("%w: %s", ErrBillNotFound, billID)
	}
	if bill.Paid {
		return nil, Transaction{}, fmt.Errorf("%w: %s", ErrBillAlreadyPaid, billID)
	}
	source, err := bill.Source()
	if err != nil {
		return nil, Transaction{}, err
	}

	accountID := pay.AccountID
	if accountID == "" {
		accountID = bill.SuggestedAccountID
	}
	account := s.Account(accountID)
	if account == nil {
		return nil, Transaction{}, fmt.Errorf("%w: %q", ErrAccountNotResolved, accountID)
	}

	amount := bill.ExpectedAmount
	if !pay.Amount.IsZero() {
		amount = pay.Amount
	}
	day := pay.Date
	if day.IsZero() {
		day = Today()
	}

	next := s.Clone()

	tx := NewTransaction(day, account.ID, FlowOut, OperationFor(source), amount.Abs(), bill.Description, SourceBillTracker)
	tx.CategoryID = bill.SuggestedCategoryID
	switch src := source.(type) {
	case LoanInstallmentSource:
		tx.Links = Links{LoanID: src.LoanID, ParcelaID: loanParcelaID(src.Number)}
	case InsuranceInstallmentSource:
		tx.Links = Links{ParcelaID: seguroParcelaID(src.PolicyID, src.Number)}
	}
	if err := next.AddTransaction(tx); err != nil {
		return nil, Transaction{}, err
	}

	if src, ok := source.(InsuranceInstallmentSource); ok {
		policy := next.Policy(src.PolicyID)
		if policy == nil {
			return nil, Transaction{}, fmt.Errorf("policy %q not found", src.PolicyID)
		}
		if err := policy.MarkPaid(src.Number, tx.ID); err != nil {
			return nil, Transaction{}, err
		}
	}

	record := bill
	record.Paid = true
	record.PaymentDate = day
	record.TransactionID = tx.ID
	if !pay.Amount.IsZero() {
		record.ExpectedAmount = amount
	}
	next.UpsertBill(record)

	return next, tx, nil
}

// UnpayBill reverses PayBill in the same order: the transaction is deleted,
// the loan or insurance payment marker is removed, and the persisted bill
// record drops its payment linkage (the record itself survives only when it
// still carries another user edit).
func UnpayBill(s *LedgerState, billID string, m Month, opts GeneratorOptions) (*LedgerState, error) {
	bill, ok := findBill(s, billID, m, opts)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBillNotFound, billID)
	}
	if !bill.Paid {
		return nil, fmt.Errorf("%w: %s", ErrBillNotPaid, billID)
	}
	if bill.SourceType == SourceExternal {
		return nil, fmt.Errorf("bill %s mirrors a ledger transaction, remove the transaction instead", billID)
	}
	source, err := bill.Source()
	if err != nil {
		return nil, err
	}

	next := s.Clone()

	if bill.TransactionID != "" && next.Transaction(bill.TransactionID) != nil {
		if err := next.RemoveTransaction(bill.TransactionID); err != nil {
			return nil, err
		}
	}

	if src, ok := source.(InsuranceInstallmentSource); ok {
		policy := next.Policy(src.PolicyID)
		if policy == nil {
			return nil, fmt.Errorf("policy %q not found", src.PolicyID)
		}
		if err := policy.UnmarkPaid(src.Number); err != nil {
			return nil, err
		}
	}

	if record := next.Bill(billID); record != nil {
		record.Paid = false
		record.PaymentDate = Date{}
		record.TransactionID = ""
		if record.IsTemplate() && !hasUserDelta(next, *record, m, opts) {
			next.RemoveBill(billID)
		}
	}

	return next, nil
}

// hasUserDelta reports whether a persisted template record still differs from
// its freshly generated base, i.e. carries an edit worth keeping.
func hasUserDelta(s *LedgerState, record Bill, m Month, opts GeneratorOptions) bool {
	if record.Excluded {
		return true
	}
	base, ok := s.generate(m, opts)[record.ID]
	if !ok {
		return false
	}
	if !record.ExpectedAmount.IsZero() && !record.ExpectedAmount.Equal(base.ExpectedAmount) {
		return true
	}
	if record.SuggestedAccountID != "" && record.SuggestedAccountID != base.SuggestedAccountID {
		return true
	}
	return false
}

// findBill locates a bill by id in the month's materialized view, falling back
// to the persisted set for ad-hoc bills outside the month.
func findBill(s *LedgerState, billID string, m Month, opts GeneratorOptions) (Bill, bool) {
	for _, b := range s.BillsForMonth(m, true, opts) {
		if b.ID == billID {
			return b, true
		}
	}
	// Generated view drops excluded unpaid templates; overrides still locate them.
	if generated, ok := s.generate(m, opts)[billID]; ok {
		merged := applyOverrides(map[string]Bill{billID: generated}, s.overridesFor(m))
		return merged[billID], true
	}
	if b := s.Bill(billID); b != nil {
		return *b, true
	}
	return Bill{}, false
}

// ExcludeBill persists the exclusion flag for a generated template, keyed by
// its deterministic id. An already-paid bill stays visible in the month view.
func ExcludeBill(s *LedgerState, billID string, m Month, opts GeneratorOptions, excluded bool) (*LedgerState, error) {
	bill, ok := findBill(s, billID, m, opts)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBillNotFound, billID)
	}
	if bill.SourceType == SourceExternal {
		return nil, fmt.Errorf("bill %s mirrors a ledger transaction and cannot be excluded", billID)
	}
	next := s.Clone()
	record := bill
	record.Excluded = excluded
	next.UpsertBill(record)
	return next, nil
}

// OverrideBillAmount persists an expected-amount override for a bill.
func OverrideBillAmount(s *LedgerState, billID string, m Month, opts GeneratorOptions, amount Money) (*LedgerState, error) {
	bill, ok := findBill(s, billID, m, opts)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBillNotFound, billID)
	}
	if bill.SourceType == SourceExternal {
		return nil, fmt.Errorf("bill %s mirrors a ledger transaction and cannot be overridden", billID)
	}
	next := s.Clone()
	record := bill
	record.ExpectedAmount = amount
	next.UpsertBill(record)
	return next, nil
}

// AddPurchaseInstallments fans a purchase out into count ad-hoc bills, one per
// month starting at firstDue, sharing a group reference.
func AddPurchaseInstallments(s *LedgerState, description string, firstDue Date, amount Money, count int, accountID, categoryID string) (*LedgerState, []Bill, error) {
	if count <= 0 {
		return nil, nil, fmt.Errorf("installment count must be positive, got %d", count)
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, nil, fmt.Errorf("installment amount must be positive, got %s", amount)
	}
	next := s.Clone()
	group := uuid.NewString()
	bills := make([]Bill, 0, count)
	for i := 1; i <= count; i++ {
		b := NewAdHocBill(fmt.Sprintf("%s (%d/%d)", description, i, count), firstDue.AddMonth(i-1), amount)
		b.SourceRef = group
		b.ParcelaNumber = i
		b.SuggestedAccountID = accountID
		b.SuggestedCategoryID = categoryID
		next.UpsertBill(b)
		bills = append(bills, b)
	}
	return next, bills, nil
}
