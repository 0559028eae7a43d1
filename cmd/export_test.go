package cmd

import (
	"path/filepath"
	"testing"

	"github.com/rpaludo/contas"
	"github.com/xuri/excelize/v2"
)

func TestExportMonth(t *testing.T) {
	s := contas.NewLedgerState()
	if err := s.AddAccount(contas.Account{ID: "cc", Name: "Conta corrente", Type: contas.AccountChecking}); err != nil {
		t.Fatal(err)
	}
	due, err := contas.ParseDate("2024-03-10")
	if err != nil {
		t.Fatal(err)
	}
	s.UpsertBill(contas.NewAdHocBill("Dentista", due, contas.M(200.0, "BRL")))
	tx := contas.NewTransaction(due, "cc", contas.FlowOut, contas.OpExpense, contas.M(200.0, "BRL"), "Dentista", contas.SourceManual)
	if err := s.AddTransaction(tx); err != nil {
		t.Fatal(err)
	}

	m, err := contas.ParseMonth("2024-03")
	if err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(t.TempDir(), "contas-2024-03.xlsx")
	if err := exportMonth(s, m, output); err != nil {
		t.Fatalf("exportMonth: %v", err)
	}

	f, err := excelize.OpenFile(output)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Contas", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Dentista" {
		t.Errorf("Contas!B2 = %q, want %q", got, "Dentista")
	}
	// GetCellValue reports the styled value, so the #,##0.00 format applies.
	got, err = f.GetCellValue("Resumo", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "200.00" {
		t.Errorf("Resumo!B2 = %q, want %q", got, "200.00")
	}
}

func TestMonthOrNow(t *testing.T) {
	m, err := monthOrNow("2024-03")
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "2024-03" {
		t.Errorf("monthOrNow = %s", m)
	}
	if _, err := monthOrNow("march"); err == nil {
		t.Error("expected an error for a malformed month")
	}
	now, err := monthOrNow("")
	if err != nil {
		t.Fatal(err)
	}
	if now != contas.MonthOf(contas.Today()) {
		t.Errorf("empty month should default to the current one, got %s", now)
	}
}
