package contas

import (
	"testing"
)

func TestApplyRules_FirstMatchWins(t *testing.T) {
	rules := []StandardizationRule{
		{ID: "r1", Pattern: "uber", CategoryID: "transporte", Operation: OpExpense, DescriptionTemplate: "Uber"},
		{ID: "r2", Pattern: "uber eats", CategoryID: "alim", Operation: OpExpense, DescriptionTemplate: "Uber Eats"},
		{ID: "r3", Pattern: "ted", Operation: OpTransfer, DescriptionTemplate: "Transferência"},
	}
	staged := []ImportedTransaction{
		{OriginalDescription: "UBER EATS PEDIDO 123", Operation: OpExpense, Amount: brl(-50)},
		{OriginalDescription: "TED PARA POUPANCA", Operation: OpExpense, Amount: brl(-500),
			Links: Links{InvestmentID: "inv1", LoanID: "fin1", VehicleTransactionID: "v1"}},
		{OriginalDescription: "PADARIA DA ESQUINA", Operation: OpExpense, Amount: brl(-10)},
	}

	out := ApplyRules(staged, rules)

	// "uber" appears first in the list, so it wins over the more specific rule.
	if out[0].CategoryID != "transporte" || out[0].Description != "Uber" {
		t.Errorf("first match did not win: %+v", out[0])
	}

	// Reclassifying as transfer clears investment/loan/vehicle linkage.
	if out[1].Operation != OpTransfer {
		t.Fatalf("rule operation not applied: %q", out[1].Operation)
	}
	if out[1].Links.InvestmentID != "" || out[1].Links.LoanID != "" || out[1].Links.VehicleTransactionID != "" {
		t.Errorf("transfer reclassification left stale links: %+v", out[1].Links)
	}

	// No rule matched: untouched.
	if out[2].CategoryID != "" || out[2].Description != "" {
		t.Errorf("unmatched row was modified: %+v", out[2])
	}

	// Input slice is not mutated.
	if staged[0].CategoryID != "" {
		t.Error("ApplyRules mutated its input")
	}
}

func TestFlagDuplicates(t *testing.T) {
	s := testState(t)
	addTx(t, s, "ledger1", "2024-05-10", "cc", FlowOut, OpExpense, 150.00)
	addTx(t, s, "opening", "2024-05-10", "cc", FlowIn, OpInitialBalance, 150.00)

	cases := []struct {
		name   string
		date   string
		amount float64
		want   bool
	}{
		{"next day same amount", "2024-05-11", -150.00, true},
		{"same day same amount", "2024-05-10", -150.00, true},
		{"two days apart", "2024-05-12", -150.00, false},
		{"within one cent", "2024-05-11", -150.01, true},
		{"two cents off", "2024-05-11", -150.02, false},
		{"inverted direction", "2024-05-10", 150.00, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			staged := []ImportedTransaction{{
				Date:                day(t, tc.date),
				Amount:              brl(tc.amount),
				OriginalDescription: "x",
				Operation:           opFor(tc.amount),
			}}
			out := s.FlagDuplicates(staged, "cc")
			if out[0].IsPotentialDuplicate != tc.want {
				t.Errorf("flagged = %v, want %v", out[0].IsPotentialDuplicate, tc.want)
			}
			if tc.want && out[0].DuplicateOfTxID != "ledger1" {
				t.Errorf("matched %q, want ledger1 (initial_balance must not match)", out[0].DuplicateOfTxID)
			}
		})
	}
}

func opFor(amount float64) OperationType {
	if amount < 0 {
		return OpExpense
	}
	return OpIncome
}

func TestImportReviewCommit(t *testing.T) {
	s := testState(t)
	s.Rules = []StandardizationRule{
		{ID: "r1", Pattern: "posto", CategoryID: "transporte", Operation: OpExpense, DescriptionTemplate: "Combustível"},
	}
	addTx(t, s, "ledger1", "2024-05-10", "cc", FlowOut, OpExpense, 150.00)

	content := "Data,Valor,Descricao\n" +
		"2024-05-11,-150.00,POSTO BR\n" +
		"2024-05-20,-80.00,LIVRARIA\n"

	next, statement, err := ImportStatement(s, "cc", "maio.csv", content, FormatAuto, ParseOptions{})
	if err != nil {
		t.Fatalf("ImportStatement: %v", err)
	}
	if statement.Status != StatementPending {
		t.Fatalf("staged status = %q, want pending", statement.Status)
	}
	if len(next.Statements) != 1 {
		t.Fatalf("staged statements = %d, want 1", len(next.Statements))
	}
	// The ledger is untouched until commit.
	if len(next.Transactions) != len(s.Transactions) {
		t.Fatal("import mutated the ledger before commit")
	}

	lines := statement.Transactions
	if lines[0].Description != "Combustível" || lines[0].CategoryID != "transporte" {
		t.Errorf("rule not applied on staging: %+v", lines[0])
	}
	if !lines[0].IsPotentialDuplicate || lines[0].DuplicateOfTxID != "ledger1" {
		t.Errorf("duplicate not flagged on staging: %+v", lines[0])
	}
	if lines[1].IsPotentialDuplicate {
		t.Errorf("non-duplicate flagged: %+v", lines[1])
	}

	// The reviewer confirms the duplicate, skipping it.
	lines[0].Skip = true
	next, err = ReviewStagedTransactions(next, statement.ID, lines)
	if err != nil {
		t.Fatalf("ReviewStagedTransactions: %v", err)
	}

	committed, err := CommitStatement(next, statement.ID)
	if err != nil {
		t.Fatalf("CommitStatement: %v", err)
	}
	if got := len(committed.Transactions); got != len(s.Transactions)+1 {
		t.Fatalf("committed transactions = %d, want one new", got)
	}
	// The skipped duplicate conciliates its ledger counterpart.
	if !committed.Transaction("ledger1").Conciliated {
		t.Error("confirmed duplicate did not conciliate the ledger transaction")
	}
	// The new transaction is normalized: positive amount, outflow, import source.
	var created *Transaction
	for i := range committed.Transactions {
		if committed.Transactions[i].Source == SourceImport {
			created = &committed.Transactions[i]
		}
	}
	if created == nil {
		t.Fatal("no imported transaction created")
	}
	if created.Flow != FlowOut || !created.Amount.Equal(brl(80)) || !created.Conciliated {
		t.Errorf("imported transaction not normalized: %+v", created)
	}
	if committed.Statement(statement.ID).Status != StatementContabilized {
		t.Error("statement not marked contabilized")
	}

	// Committing twice is refused.
	if _, err := CommitStatement(committed, statement.ID); err == nil {
		t.Error("double commit should fail")
	}
}

func TestDiscardStatement(t *testing.T) {
	s := testState(t)
	content := "Data,Valor,Descricao\n2024-05-11,-10.00,X\n"
	next, statement, err := ImportStatement(s, "cc", "x.csv", content, FormatAuto, ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	discarded, err := DiscardStatement(next, statement.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(discarded.Statements) != 0 {
		t.Errorf("statement not discarded: %d remain", len(discarded.Statements))
	}
	if len(discarded.Transactions) != len(s.Transactions) {
		t.Error("discard touched the ledger")
	}
}

func TestSummarize(t *testing.T) {
	s := testState(t)
	addTx(t, s, "sal", "2024-05-01", "cc", FlowIn, OpIncome, 5000)
	addTx(t, s, "mer", "2024-05-03", "cc", FlowOut, OpExpense, 800)
	addTx(t, s, "fin", "2024-05-05", "cc", FlowOut, OpLoanPayment, 1117.23)
	addTx(t, s, "tra", "2024-05-07", "cc", FlowTransferOut, OpTransfer, 1000)
	addTx(t, s, "out", "2024-06-01", "cc", FlowOut, OpExpense, 99)

	sum := s.Summarize(month(t, "2024-05"))
	if !sum.Income.Equal(brl(5000)) {
		t.Errorf("income = %s, want 5000", sum.Income)
	}
	if !sum.Expenses.Equal(brl(1917.23)) {
		t.Errorf("expenses = %s, want 1917.23", sum.Expenses)
	}
	if !sum.Net.Equal(brl(3082.77)) {
		t.Errorf("net = %s, want 3082.77", sum.Net)
	}
}
