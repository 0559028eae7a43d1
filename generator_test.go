package contas

import (
	"slices"
	"testing"
)

func TestBillsForMonth_DeterministicIDs(t *testing.T) {
	s := testState(t)
	m := month(t, "2024-02")
	bills := s.BillsForMonth(m, true, DefaultGeneratorOptions())

	want := []string{
		"fixed_aluguel_202402", // due day 10
		"loan_fin1_1_202402",   // loan starts 2024-01-05, installment 1 due 2024-02-05
		"seguro_seg1_1_202402", // parcela 1 due 2024-02-10
		"variable_alim_202402", // due day 25
	}
	got := billIDs(bills)
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("bill ids = %v, want %v", got, want)
	}

	// Category "lazer" has no nature and must not generate an estimate.
	for _, id := range got {
		if id == "fixed_lazer_202402" || id == "variable_lazer_202402" {
			t.Errorf("category without nature generated a bill: %s", id)
		}
	}
}

func TestBillsForMonth_Idempotent(t *testing.T) {
	s := testState(t)
	addTx(t, s, "prev", "2024-01-20", "cc", FlowOut, OpExpense, 480)
	s.Transactions[len(s.Transactions)-1].CategoryID = "alim"

	m := month(t, "2024-02")
	opts := DefaultGeneratorOptions()
	first := s.BillsForMonth(m, true, opts)
	second := s.BillsForMonth(m, true, opts)

	if len(first) != len(second) {
		t.Fatalf("re-generation changed the result size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.ID != b.ID || a.DueDate != b.DueDate ||
			!a.ExpectedAmount.Equal(b.ExpectedAmount) ||
			a.Paid != b.Paid || a.Excluded != b.Excluded || a.TransactionID != b.TransactionID {
			t.Errorf("bill %d differs between generations: %+v vs %+v", i, a, b)
		}
	}
}

func TestBillsForMonth_EstimateDefaultsToPriorMonthSpend(t *testing.T) {
	s := testState(t)
	addTx(t, s, "g1", "2024-01-08", "cc", FlowOut, OpExpense, 300)
	s.Transactions[len(s.Transactions)-1].CategoryID = "alim"
	addTx(t, s, "g2", "2024-01-22", "cc", FlowOut, OpExpense, 180)
	s.Transactions[len(s.Transactions)-1].CategoryID = "alim"

	m := month(t, "2024-02")
	bills := s.BillsForMonth(m, true, DefaultGeneratorOptions())
	var estimate *Bill
	for i := range bills {
		if bills[i].ID == "variable_alim_202402" {
			estimate = &bills[i]
		}
	}
	if estimate == nil {
		t.Fatal("variable estimate bill not generated")
	}
	if !estimate.ExpectedAmount.Equal(brl(480)) {
		t.Errorf("estimate amount = %s, want prior month spend %s", estimate.ExpectedAmount, brl(480))
	}
	if estimate.DueDate != day(t, "2024-02-25") {
		t.Errorf("variable estimate due = %s, want 2024-02-25", estimate.DueDate)
	}
}

func TestBillsForMonth_PaidDerivedFromTransactionSearch(t *testing.T) {
	s := testState(t)
	tx := Transaction{
		ID: "pay1", Date: day(t, "2024-02-05"), AccountID: "cc",
		Flow: FlowOut, Operation: OpLoanPayment, Amount: brl(1117.23),
		Description: "Financiamento - parcela 1/12",
		Links:       Links{LoanID: "fin1", ParcelaID: loanParcelaID(1)},
	}
	if err := s.AddTransaction(tx); err != nil {
		t.Fatal(err)
	}

	bills := s.BillsForMonth(month(t, "2024-02"), true, DefaultGeneratorOptions())
	for _, b := range bills {
		if b.ID != "loan_fin1_1_202402" {
			continue
		}
		if !b.Paid {
			t.Fatal("loan bill should derive paid from the linked transaction")
		}
		if b.TransactionID != "pay1" {
			t.Errorf("bill transaction id = %q, want pay1", b.TransactionID)
		}
		return
	}
	t.Fatal("loan bill not generated")
}

func TestBillsForMonth_OverrideMerge(t *testing.T) {
	s := testState(t)
	m := month(t, "2024-02")
	// Persist an amount override keyed by the deterministic id.
	s.UpsertBill(Bill{
		ID:             "loan_fin1_1_202402",
		DueDate:        day(t, "2024-02-05"),
		ExpectedAmount: brl(1200),
		SourceType:     SourceLoanInstallment,
		SourceRef:      "fin1",
		ParcelaNumber:  1,
	})

	bills := s.BillsForMonth(m, true, DefaultGeneratorOptions())
	for _, b := range bills {
		if b.ID == "loan_fin1_1_202402" {
			if !b.ExpectedAmount.Equal(brl(1200)) {
				t.Errorf("override amount not applied: %s", b.ExpectedAmount)
			}
			return
		}
	}
	t.Fatal("loan bill not found")
}

func TestBillsForMonth_ExcludedUnlessPaid(t *testing.T) {
	s := testState(t)
	m := month(t, "2024-02")
	s.UpsertBill(Bill{
		ID:         "seguro_seg1_1_202402",
		DueDate:    day(t, "2024-02-10"),
		SourceType: SourceInsuranceInstallment,
		SourceRef:  "seg1", ParcelaNumber: 1,
		Excluded: true,
	})

	bills := s.BillsForMonth(m, true, DefaultGeneratorOptions())
	if slices.Contains(billIDs(bills), "seguro_seg1_1_202402") {
		t.Fatal("excluded unpaid bill should be dropped from the view")
	}

	// Once paid, the bill stays visible even though it is excluded.
	tx := Transaction{
		ID: "segpay", Date: day(t, "2024-02-10"), AccountID: "cc",
		Flow: FlowOut, Operation: OpVehicle, Amount: brl(300),
		Description: "Seguro parcela 1",
		Links:       Links{ParcelaID: seguroParcelaID("seg1", 1)},
	}
	if err := s.AddTransaction(tx); err != nil {
		t.Fatal(err)
	}
	bills = s.BillsForMonth(m, true, DefaultGeneratorOptions())
	if !slices.Contains(billIDs(bills), "seguro_seg1_1_202402") {
		t.Fatal("excluded but paid bill must remain visible")
	}
}

func TestBillsForMonth_WithoutTemplates(t *testing.T) {
	s := testState(t)
	m := month(t, "2024-02")
	adhoc := NewAdHocBill("IPTU", day(t, "2024-02-12"), brl(250))
	s.UpsertBill(adhoc)
	// A persisted paid template record shows up in the lightweight view too.
	s.UpsertBill(Bill{
		ID: "loan_fin1_1_202402", DueDate: day(t, "2024-02-05"),
		ExpectedAmount: brl(1117.23), SourceType: SourceLoanInstallment,
		SourceRef: "fin1", ParcelaNumber: 1,
		Paid: true, TransactionID: "x", PaymentDate: day(t, "2024-02-05"),
	})

	bills := s.BillsForMonth(m, false, DefaultGeneratorOptions())
	ids := billIDs(bills)
	if !slices.Contains(ids, adhoc.ID) {
		t.Error("ad-hoc bill missing from lightweight view")
	}
	if !slices.Contains(ids, "loan_fin1_1_202402") {
		t.Error("paid bill missing from lightweight view")
	}
	if len(bills) != 2 {
		t.Errorf("lightweight view has %d bills, want 2 (no templates)", len(bills))
	}
	// Sorted ascending by due date.
	if bills[0].ID != "loan_fin1_1_202402" {
		t.Errorf("bills not sorted by due date: %v", ids)
	}
}

func TestBillsForMonth_ExternalExpensesJoinAsPaid(t *testing.T) {
	s := testState(t)
	m := month(t, "2024-02")
	addTx(t, s, "farmacia", "2024-02-14", "cc", FlowOut, OpExpense, 85)

	bills := s.BillsForMonth(m, true, DefaultGeneratorOptions())
	var ext *Bill
	for i := range bills {
		if bills[i].ID == "farmacia" {
			ext = &bills[i]
		}
	}
	if ext == nil {
		t.Fatal("expense recorded outside the tracker missing from the month view")
	}
	if !ext.Paid || ext.SourceType != SourceExternal || ext.TransactionID != "farmacia" {
		t.Errorf("external entry = %+v, want a paid external_expense mirroring the transaction", *ext)
	}
	if !ext.ExpectedAmount.Equal(brl(85)) || ext.DueDate != day(t, "2024-02-14") {
		t.Errorf("external entry has %s due %s, want 85 due 2024-02-14", ext.ExpectedAmount, ext.DueDate)
	}
	if ext.PaymentDate != day(t, "2024-02-14") {
		t.Errorf("external entry payment date = %s, want the transaction date", ext.PaymentDate)
	}

	// The lightweight view shows it too.
	if !slices.Contains(billIDs(s.BillsForMonth(m, false, DefaultGeneratorOptions())), "farmacia") {
		t.Error("external entry missing from the lightweight view")
	}
}

func TestBillsForMonth_ExternalExpenseFilter(t *testing.T) {
	s := testState(t)
	m := month(t, "2024-02")

	addTx(t, s, "salario", "2024-02-01", "cc", FlowIn, OpIncome, 5000)
	addTx(t, s, "aplicacao", "2024-02-02", "cc", FlowOut, OpDeposit, 1000)
	addTx(t, s, "janeiro", "2024-01-14", "cc", FlowOut, OpExpense, 60)
	tracker := Transaction{
		ID: "trk", Date: day(t, "2024-02-10"), AccountID: "cc",
		Flow: FlowOut, Operation: OpExpense, Amount: brl(1000),
		Description: "Aluguel", Source: SourceBillTracker,
	}
	if err := s.AddTransaction(tracker); err != nil {
		t.Fatal(err)
	}
	linked := Transaction{
		ID: "emp", Date: day(t, "2024-02-05"), AccountID: "cc",
		Flow: FlowOut, Operation: OpLoanPayment, Amount: brl(1117.23),
		Description: "Financiamento",
		Links:       Links{LoanID: "fin1", ParcelaID: loanParcelaID(1)},
	}
	if err := s.AddTransaction(linked); err != nil {
		t.Fatal(err)
	}
	staged := Transaction{
		ID: "imp", Date: day(t, "2024-02-08"), AccountID: "cc",
		Flow: FlowOut, Operation: OpExpense, Amount: brl(40),
		Description: "PAG*Mercado", Source: SourceImport,
	}
	if err := s.AddTransaction(staged); err != nil {
		t.Fatal(err)
	}

	ids := billIDs(s.BillsForMonth(m, true, DefaultGeneratorOptions()))
	for _, id := range []string{"salario", "aplicacao", "janeiro", "trk", "emp", "imp"} {
		if slices.Contains(ids, id) {
			t.Errorf("transaction %s must not surface as an external entry", id)
		}
	}

	// Conciliating the imported line brings it into the view.
	for i := range s.Transactions {
		if s.Transactions[i].ID == "imp" {
			s.Transactions[i].Conciliated = true
		}
	}
	ids = billIDs(s.BillsForMonth(m, true, DefaultGeneratorOptions()))
	if !slices.Contains(ids, "imp") {
		t.Error("conciliated imported expense missing from the view")
	}
}

func TestBillsForMonth_AdHocOtherMonthExcluded(t *testing.T) {
	s := testState(t)
	other := NewAdHocBill("Matrícula", day(t, "2024-03-01"), brl(90))
	s.UpsertBill(other)
	bills := s.BillsForMonth(month(t, "2024-02"), false, DefaultGeneratorOptions())
	if slices.Contains(billIDs(bills), other.ID) {
		t.Error("ad-hoc bill of another month leaked into the view")
	}
}
