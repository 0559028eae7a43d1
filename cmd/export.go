package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/rpaludo/contas"
	"github.com/xuri/excelize/v2"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	month  string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a month to an xlsx workbook" }
func (*exportCmd) Usage() string {
	return `cta export [-m <month>] [-o <file>]

  Exports the month's bills and transactions to an xlsx workbook with a
  Contas sheet, a Transações sheet and a Resumo sheet.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to export (YYYY-MM), defaults to the current month")
	f.StringVar(&c.output, "o", "", "Output file, defaults to contas-<month>.xlsx")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := monthOrNow(c.month)
	if err != nil {
		return fail(err)
	}
	output := c.output
	if output == "" {
		output = fmt.Sprintf("contas-%s.xlsx", m)
	}

	s, err := loadState()
	if err != nil {
		return fail(err)
	}
	if err := exportMonth(s, m, output); err != nil {
		return fail(err)
	}
	fmt.Printf("Exported %s to %s\n", m, output)
	return subcommands.ExitSuccess
}

func exportMonth(s *contas.LedgerState, m contas.Month, output string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Contas")
	if _, err := f.NewSheet("Transações"); err != nil {
		return err
	}
	if _, err := f.NewSheet("Resumo"); err != nil {
		return err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	numStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})

	writeHeader := func(sheet string, headers []string) {
		for i, header := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, header)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}
	}

	bills := s.BillsForMonth(m, true, contas.DefaultGeneratorOptions())
	writeHeader("Contas", []string{"Vencimento", "Descrição", "Valor", "Paga", "Pagamento"})
	for i, bill := range bills {
		row := i + 2
		f.SetCellValue("Contas", fmt.Sprintf("A%d", row), bill.DueDate.String())
		f.SetCellValue("Contas", fmt.Sprintf("B%d", row), bill.Description)
		f.SetCellValue("Contas", fmt.Sprintf("C%d", row), bill.ExpectedAmount.InexactFloat())
		f.SetCellValue("Contas", fmt.Sprintf("D%d", row), bill.Paid)
		if bill.Paid {
			f.SetCellValue("Contas", fmt.Sprintf("E%d", row), bill.PaymentDate.String())
		}
	}
	if len(bills) > 0 {
		f.SetCellStyle("Contas", "C2", fmt.Sprintf("C%d", len(bills)+1), numStyle)
	}
	f.SetColWidth("Contas", "B", "B", 45)

	writeHeader("Transações", []string{"Data", "Conta", "Descrição", "Operação", "Valor"})
	row := 2
	for _, tx := range s.Transactions {
		if !m.Contains(tx.Date) {
			continue
		}
		amount := tx.Amount.InexactFloat()
		if !tx.Flow.Inbound() {
			amount = -amount
		}
		f.SetCellValue("Transações", fmt.Sprintf("A%d", row), tx.Date.String())
		f.SetCellValue("Transações", fmt.Sprintf("B%d", row), tx.AccountID)
		f.SetCellValue("Transações", fmt.Sprintf("C%d", row), tx.Description)
		f.SetCellValue("Transações", fmt.Sprintf("D%d", row), string(tx.Operation))
		f.SetCellValue("Transações", fmt.Sprintf("E%d", row), amount)
		row++
	}
	if row > 2 {
		f.SetCellStyle("Transações", "E2", fmt.Sprintf("E%d", row-1), numStyle)
	}
	f.SetColWidth("Transações", "C", "C", 45)

	sum := s.Summarize(m)
	writeHeader("Resumo", []string{"Receitas", "Despesas", "Resultado"})
	f.SetCellValue("Resumo", "A2", sum.Income.InexactFloat())
	f.SetCellValue("Resumo", "B2", sum.Expenses.InexactFloat())
	f.SetCellValue("Resumo", "C2", sum.Net.InexactFloat())
	f.SetCellStyle("Resumo", "A2", "C2", numStyle)

	return f.SaveAs(output)
}
