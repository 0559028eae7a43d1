package contas

// MonthlySummary is the income/expense/net picture of one month, the engine
// side of the results report.
type MonthlySummary struct {
	Month    Month
	Income   Money
	Expenses Money
	Net      Money
}

// Summarize folds the ledger's transactions for a month. Transfers and
// opening balances move money between accounts and are not results, so they
// are left out; yields count as income; loan payments, vehicle spend and plain
// expenses count as expenses.
func (s *LedgerState) Summarize(m Month) MonthlySummary {
	sum := MonthlySummary{Month: m}
	for _, tx := range s.Transactions {
		if !m.Contains(tx.Date) {
			continue
		}
		switch tx.Operation {
		case OpIncome, OpYield:
			sum.Income = sum.Income.Add(tx.Amount)
		case OpExpense, OpLoanPayment, OpVehicle:
			sum.Expenses = sum.Expenses.Add(tx.Amount)
		}
	}
	sum.Net = sum.Income.Sub(sum.Expenses)
	return sum
}
