package contas

import (
	"fmt"
	"slices"
	"strings"
)

// GeneratorOptions are the tunable defaults of the obligation generator.
// The due days and the prior-month estimate are heuristics, not invariants.
type GeneratorOptions struct {
	// FixedDueDay is the day of month fixed-expense estimates fall due.
	FixedDueDay int
	// VariableDueDay is the day of month variable-expense estimates fall due.
	VariableDueDay int
	// EstimateFromPriorMonth defaults an estimate's amount to the prior
	// month's actual spend in the category.
	EstimateFromPriorMonth bool
}

// DefaultGeneratorOptions returns the stock generator configuration.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{FixedDueDay: 10, VariableDueDay: 25, EstimateFromPriorMonth: true}
}

// BillsForMonth materializes the month's expected payables: loan installments,
// insurance parcelas, fixed/variable expense estimates and ad-hoc entries,
// with persisted user overrides re-applied on top of the freshly generated
// templates. Expense transactions recorded outside the tracker join the view
// as already-paid external entries. Calling it twice with no intervening
// mutation returns structurally identical results.
//
// With includeTemplates false it returns only the ad-hoc bills plus bills
// already paid this month, the lightweight "what changed" view.
func (s *LedgerState) BillsForMonth(m Month, includeTemplates bool, opts GeneratorOptions) []Bill {
	overrides := s.overridesFor(m)

	result := s.externalPaid(m)
	for _, b := range s.Bills {
		if b.SourceType == SourceAdHoc && m.Contains(b.DueDate) && (!b.Excluded || b.Paid) {
			result = append(result, b)
		}
	}

	if !includeTemplates {
		for _, b := range s.Bills {
			if b.SourceType != SourceAdHoc && b.Paid && m.Contains(b.DueDate) {
				result = append(result, b)
			}
		}
		sortBills(result)
		return result
	}

	generated := s.generate(m, opts)
	merged := applyOverrides(generated, overrides)
	for _, b := range merged {
		if b.Excluded && !b.Paid {
			// Paid history stays visible even when excluded going forward.
			continue
		}
		result = append(result, b)
	}
	sortBills(result)
	return result
}

// externalPaid surfaces the month's expense transactions the tracker does not
// manage as already-paid entries. A transaction qualifies when it is an
// outflow of an expense-like operation, has been accounted for (imported lines
// count only once conciliated), and is neither tracker-created nor linked to
// an obligation.
func (s *LedgerState) externalPaid(m Month) []Bill {
	tracked := make(map[string]bool)
	for _, b := range s.Bills {
		if b.Paid && b.TransactionID != "" {
			tracked[b.TransactionID] = true
		}
	}

	var bills []Bill
	for _, tx := range s.Transactions {
		if !m.Contains(tx.Date) || tx.Flow.Inbound() {
			continue
		}
		switch tx.Operation {
		case OpExpense, OpLoanPayment, OpVehicle:
		default:
			continue
		}
		if tx.Source == SourceImport && !tx.Conciliated {
			continue
		}
		if tx.Source == SourceBillTracker || tracked[tx.ID] {
			continue
		}
		// Linked payments already surface through their generated bills.
		if !tx.Links.IsZero() {
			continue
		}
		bills = append(bills, Bill{
			ID:                  tx.ID,
			Description:         tx.Description,
			DueDate:             tx.Date,
			ExpectedAmount:      tx.Amount,
			Paid:                true,
			PaymentDate:         tx.Date,
			TransactionID:       tx.ID,
			SourceType:          SourceExternal,
			SourceRef:           tx.ID,
			SuggestedAccountID:  tx.AccountID,
			SuggestedCategoryID: tx.CategoryID,
		})
	}
	return bills
}

// overridesFor indexes the persisted bill records that act as overrides for
// the month's generated templates.
func (s *LedgerState) overridesFor(m Month) map[string]Bill {
	overrides := make(map[string]Bill)
	for _, b := range s.Bills {
		if b.SourceType == SourceAdHoc {
			continue
		}
		if m.Contains(b.DueDate) {
			overrides[b.ID] = b
		}
	}
	return overrides
}

// generate produces the month's template bills keyed by deterministic id,
// before any override is applied. Paid status of loan and insurance templates
// is derived by transaction search, never read from a stored flag.
func (s *LedgerState) generate(m Month, opts GeneratorOptions) map[string]Bill {
	bills := make(map[string]Bill)

	for _, loan := range s.Loans {
		if loan.Status != LoanActive {
			continue
		}
		paid := loan.PaidInstallments(s.Transactions)
		for n := 1; n <= loan.TermMonths; n++ {
			due := loan.InstallmentDue(n)
			if !m.Contains(due) {
				continue
			}
			src := LoanInstallmentSource{LoanID: loan.ID, Number: n}
			b := Bill{
				ID:                 src.BillID(m),
				Description:        loanDescription(loan, n),
				DueDate:            due,
				ExpectedAmount:     M(loan.Installment, DefaultCurrency),
				SourceType:         src.Kind(),
				SourceRef:          loan.ID,
				ParcelaNumber:      n,
				SuggestedAccountID: loan.LinkedAccountID,
			}
			if txID, ok := paid[n]; ok {
				b.Paid = true
				b.TransactionID = txID
				if tx := s.Transaction(txID); tx != nil {
					b.PaymentDate = tx.Date
				}
			}
			bills[b.ID] = b
		}
	}

	for i := range s.Policies {
		policy := &s.Policies[i]
		for _, inst := range policy.Installments {
			if !m.Contains(inst.DueDate) {
				continue
			}
			src := InsuranceInstallmentSource{PolicyID: policy.ID, Number: inst.Number}
			b := Bill{
				ID:             src.BillID(m),
				Description:    seguroDescription(policy, inst.Number),
				DueDate:        inst.DueDate,
				ExpectedAmount: inst.Amount,
				SourceType:     src.Kind(),
				SourceRef:      policy.ID,
				ParcelaNumber:  inst.Number,
			}
			if tx := policy.paymentFor(inst.Number, s.Transactions); tx != nil {
				b.Paid = true
				b.TransactionID = tx.ID
				b.PaymentDate = tx.Date
			}
			bills[b.ID] = b
		}
	}

	prior := m.Add(-1)
	for _, cat := range s.Categories {
		var src ObligationSource
		var due Date
		switch cat.Nature {
		case NatureFixed:
			src = FixedExpenseSource{CategoryID: cat.ID}
			due = m.Day(opts.FixedDueDay)
		case NatureVariable:
			src = VariableExpenseSource{CategoryID: cat.ID}
			due = m.Day(opts.VariableDueDay)
		default:
			continue
		}
		var estimate Money
		if opts.EstimateFromPriorMonth {
			estimate = s.CategorySpend(cat.ID, prior)
		}
		id := src.BillID(m)
		bills[id] = Bill{
			ID:                  id,
			Description:         cat.Name,
			DueDate:             due,
			ExpectedAmount:      estimate,
			SourceType:          src.Kind(),
			SourceRef:           cat.ID,
			SuggestedCategoryID: cat.ID,
		}
	}

	return bills
}

// applyOverrides merges persisted user edits on top of freshly generated
// templates. Overrides win for exclusion, amount and suggested account; the
// computed paid state stays authoritative unless the override carries a
// payment the transaction search did not find (a payment recorded mid-edit).
func applyOverrides(generated map[string]Bill, overrides map[string]Bill) map[string]Bill {
	merged := make(map[string]Bill, len(generated))
	for id, b := range generated {
		o, ok := overrides[id]
		if !ok {
			merged[id] = b
			continue
		}
		b.Excluded = o.Excluded
		if !o.ExpectedAmount.IsZero() {
			b.ExpectedAmount = o.ExpectedAmount
		}
		if o.SuggestedAccountID != "" {
			b.SuggestedAccountID = o.SuggestedAccountID
		}
		if o.SuggestedCategoryID != "" {
			b.SuggestedCategoryID = o.SuggestedCategoryID
		}
		if o.Description != "" {
			b.Description = o.Description
		}
		if !b.Paid && (o.TransactionID != "" || !o.PaymentDate.IsZero()) {
			b.Paid = true
			b.TransactionID = o.TransactionID
			b.PaymentDate = o.PaymentDate
		}
		merged[id] = b
	}
	return merged
}

func sortBills(bills []Bill) {
	slices.SortStableFunc(bills, func(a, b Bill) int {
		switch {
		case a.DueDate.Before(b.DueDate):
			return -1
		case a.DueDate.After(b.DueDate):
			return 1
		default:
			return strings.Compare(a.ID, b.ID)
		}
	})
}

func loanDescription(l Loan, n int) string {
	name := l.Name
	if name == "" {
		name = "Empréstimo"
	}
	return fmt.Sprintf("%s - parcela %d/%d", name, n, l.TermMonths)
}

func seguroDescription(p *InsurancePolicy, n int) string {
	return fmt.Sprintf("Seguro %s - parcela %d/%d", p.ID, n, len(p.Installments))
}
