package contas

import "testing"

func TestBalanceAsOf_OrdinaryAccount(t *testing.T) {
	s := testState(t)
	addTx(t, s, "t1", "2024-01-10", "cc", FlowIn, OpIncome, 100)
	addTx(t, s, "t2", "2024-01-20", "cc", FlowOut, OpExpense, 40)
	addTx(t, s, "t3", "2024-02-01", "cc", FlowTransferOut, OpTransfer, 25)

	cases := []struct {
		name string
		date string
		want float64
	}{
		{"before everything", "2024-01-01", 0},
		{"after income", "2024-01-15", 100},
		{"after expense", "2024-01-25", 60},
		{"after transfer out", "2024-02-02", 35},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.BalanceAsOf("cc", day(t, tc.date))
			if !got.Equal(brl(tc.want)) {
				t.Errorf("BalanceAsOf(cc, %s) = %s, want %s", tc.date, got, brl(tc.want))
			}
		})
	}

	// Zero date is open-ended.
	if got := s.BalanceAsOf("cc", Date{}); !got.Equal(brl(35)) {
		t.Errorf("open-ended balance = %s, want %s", got, brl(35))
	}
}

func TestBalanceAsOf_CreditCardInvertsSign(t *testing.T) {
	s := testState(t)
	// A purchase (out) increases the owed balance.
	addTx(t, s, "p1", "2024-03-05", "card", FlowOut, OpExpense, 150)
	if got := s.Balance("card"); !got.Equal(brl(150)) {
		t.Fatalf("owed after purchase = %s, want %s", got, brl(150))
	}
	// A payment (in) decreases it.
	addTx(t, s, "p2", "2024-03-15", "card", FlowIn, OpTransfer, 150)
	if got := s.Balance("card"); !got.IsZero() {
		t.Fatalf("owed after payment = %s, want zero", got)
	}
}

func TestBalanceAsOf_UnknownAccountIsSoftMiss(t *testing.T) {
	s := testState(t)
	if got := s.BalanceAsOf("nope", Date{}); !got.IsZero() {
		t.Errorf("unknown account balance = %s, want zero", got)
	}
}

func TestAddAccount_AnchorsOpeningBalance(t *testing.T) {
	s := NewLedgerState()
	if err := s.AddAccount(Account{ID: "a1", Name: "Poupança", Type: AccountSavings, InitialBalance: brl(500), Currency: "BRL"}); err != nil {
		t.Fatal(err)
	}
	if got := s.Balance("a1"); !got.Equal(brl(500)) {
		t.Errorf("balance after opening = %s, want %s", got, brl(500))
	}

	// On a credit card the opening balance is money owed.
	if err := s.AddAccount(Account{ID: "c1", Name: "Cartão", Type: AccountCreditCard, InitialBalance: brl(200), Currency: "BRL"}); err != nil {
		t.Fatal(err)
	}
	if got := s.Balance("c1"); !got.Equal(brl(200)) {
		t.Errorf("owed after opening = %s, want %s", got, brl(200))
	}
}

func TestRemoveAccount_RefusedWithTransactions(t *testing.T) {
	s := testState(t)
	addTx(t, s, "t1", "2024-01-10", "cc", FlowIn, OpIncome, 100)
	if err := s.RemoveAccount("cc"); err == nil {
		t.Fatal("expected removal of referenced account to fail")
	}
	if err := s.RemoveAccount("card"); err != nil {
		t.Fatalf("unexpected error removing empty account: %v", err)
	}
}
