package contas

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrNonConvergent is returned when the rate solver cannot find a monthly rate
// for the given terms, either because iteration exhausted or the terms are
// infeasible (total payments below principal). Callers must treat it as "no
// rate", never substitute a default.
var ErrNonConvergent = errors.New("monthly rate does not converge")

// AmortizationItem is one row of a French (PRICE) amortization schedule.
// Monetary fields are rounded half-up to 2 decimals so intermediate balances
// are reproducible.
type AmortizationItem struct {
	Installment int             `json:"installmentNumber"`
	Interest    decimal.Decimal `json:"interest"`
	Principal   decimal.Decimal `json:"principalPortion"`
	Remaining   decimal.Decimal `json:"remainingBalance"`
}

// Schedule computes the loan's full PRICE schedule.
//
// Each row: interest = remaining × monthlyRate; principal = installment −
// interest. The final installment forces principal = remaining so the schedule
// closes at exactly zero. Once the balance reaches zero before the term ends,
// remaining rows report zero interest and principal.
//
// A loan with zero term yields an empty schedule (soft miss, not an error).
func Schedule(l Loan) []AmortizationItem {
	if l.TermMonths <= 0 {
		return nil
	}
	items := make([]AmortizationItem, 0, l.TermMonths)
	remaining := l.TotalPrincipal.Round(2)
	for n := 1; n <= l.TermMonths; n++ {
		if remaining.LessThanOrEqual(decimal.Zero) {
			items = append(items, AmortizationItem{Installment: n, Remaining: decimal.Zero})
			continue
		}
		interest := remaining.Mul(l.MonthlyRate).Round(2)
		principal := l.Installment.Sub(interest).Round(2)
		if n == l.TermMonths || principal.GreaterThan(remaining) {
			principal = remaining
		}
		remaining = remaining.Sub(principal)
		items = append(items, AmortizationItem{
			Installment: n,
			Interest:    interest,
			Principal:   principal,
			Remaining:   remaining,
		})
	}
	return items
}

const (
	rateSolverGuess     = 0.01
	rateSolverMaxIter   = 100
	rateSolverTolerance = 1e-7
)

// SolveMonthlyRate recovers the monthly interest rate implied by a principal,
// a fixed payment and a number of periods, by Newton–Raphson root-finding on
//
//	NPV(i) = payment·(1−(1+i)^−n)/i − principal
//
// with the analytic derivative and the i=0 special case payment·n − principal.
// It returns ErrNonConvergent when the terms are infeasible, the derivative
// vanishes, or iteration exhausts without reaching the tolerance.
func SolveMonthlyRate(principal, payment float64, periods int) (float64, error) {
	if periods <= 0 || principal <= 0 || payment <= 0 {
		return 0, ErrNonConvergent
	}
	// Total payments below principal: no non-negative rate can exist.
	if payment*float64(periods) < principal {
		return 0, ErrNonConvergent
	}
	// Total payments equal to principal: the rate is exactly zero. Newton
	// cannot land there, the NPV noise floor near i=0 exceeds the tolerance.
	if payment*float64(periods) == principal {
		return 0, nil
	}

	n := float64(periods)
	npv := func(i float64) float64 {
		if i == 0 {
			return payment*n - principal
		}
		return payment*(1-math.Pow(1+i, -n))/i - principal
	}
	// d/di of payment·(1−(1+i)^−n)/i.
	derivative := func(i float64) float64 {
		if i == 0 {
			// Limit of the derivative as i→0.
			return -payment * n * (n + 1) / 2
		}
		pow := math.Pow(1+i, -n-1)
		return payment * (n*i*pow - (1 - math.Pow(1+i, -n))) / (i * i)
	}

	rate := rateSolverGuess
	for iter := 0; iter < rateSolverMaxIter; iter++ {
		value := npv(rate)
		if math.Abs(value) < rateSolverTolerance {
			return rate, nil
		}
		slope := derivative(rate)
		if math.Abs(slope) < 1e-12 {
			return 0, ErrNonConvergent
		}
		rate -= value / slope
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= -1 {
			return 0, ErrNonConvergent
		}
		// Below this magnitude the iterate is indistinguishable from zero.
		if math.Abs(rate) < 1e-9 {
			return 0, nil
		}
	}
	return 0, ErrNonConvergent
}
