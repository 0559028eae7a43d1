package contas

import "github.com/shopspring/decimal"

// AccrualPosition answers, for an insurance policy at a date, the asset side
// ("premium not yet expensed") and the liability side ("premium not yet paid").
type AccrualPosition struct {
	Unexpensed Money `json:"unexpensed"`
	Unpaid     Money `json:"unpaid"`
}

// Accrual expenses the policy's premium straight-line across the coverage
// window and measures pending payment.
//
// Unexpensed = max(0, premium − dailyRate × daysElapsed), clamped inside the
// coverage window and zero outside it.
//
// Unpaid is deliberately driven off the transactions linked to the policy's
// parcelas (dated at or before asOf), not off the Paid boolean, so a partial
// or rescheduled payment is reflected correctly.
func Accrual(p InsurancePolicy, transactions []Transaction, asOf Date) AccrualPosition {
	currency := p.TotalPremium.Currency()
	pos := AccrualPosition{Unexpensed: M(0, currency), Unpaid: M(0, currency)}

	premium := p.TotalPremium.Decimal()
	coverageDays := p.CoverageStart.DaysUntil(p.CoverageEnd)
	if coverageDays > 0 && !asOf.Before(p.CoverageStart) && !asOf.After(p.CoverageEnd) {
		// dailyRate × daysElapsed, multiplied before dividing so the last day
		// of coverage lands on exactly zero unexpensed.
		elapsed := decimal.NewFromInt(int64(p.CoverageStart.DaysUntil(asOf)))
		accrued := premium.Mul(elapsed).Div(decimal.NewFromInt(int64(coverageDays)))
		if accrued.GreaterThan(premium) {
			accrued = premium
		}
		unexpensed := premium.Sub(accrued)
		if unexpensed.IsNegative() {
			unexpensed = decimal.Zero
		}
		pos.Unexpensed = M(unexpensed, currency)
	}

	paid := decimal.Zero
	for _, inst := range p.Installments {
		tx := p.paymentFor(inst.Number, transactions)
		if tx == nil || tx.Date.After(asOf) {
			continue
		}
		paid = paid.Add(tx.Amount.Decimal())
	}
	unpaid := premium.Sub(paid)
	if unpaid.IsNegative() {
		unpaid = decimal.Zero
	}
	pos.Unpaid = M(unpaid, currency)
	return pos
}
