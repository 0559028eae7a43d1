package contas

// BalanceAsOf computes an account's balance at end of the given day by folding
// the account's transactions in date order. A zero Date means open-ended.
//
// Ordinary accounts: in and transfer_in add, out and transfer_out subtract.
// Credit-card accounts invert the convention: an out (a purchase) increases
// the owed balance and an in (a payment) decreases it.
//
// An unknown account id is a soft miss and yields a zero balance so that
// dashboards keep rendering.
func (s *LedgerState) BalanceAsOf(accountID string, day Date) Money {
	account := s.Account(accountID)
	if account == nil {
		return Money{}
	}
	balance := M(0, account.CurrencyOrDefault())
	for _, tx := range s.AccountTransactions(accountID, day) {
		amount := tx.Amount
		inbound := tx.Flow.Inbound()
		if account.Type.IsLiability() {
			inbound = !inbound
		}
		if inbound {
			balance = balance.Add(amount)
		} else {
			balance = balance.Sub(amount)
		}
	}
	return balance
}

// Balance is the open-ended form of BalanceAsOf.
func (s *LedgerState) Balance(accountID string) Money {
	return s.BalanceAsOf(accountID, Date{})
}
