// Package renderer turns engine results into markdown for terminal display.
package renderer

import (
	"fmt"
	"strings"

	"github.com/rpaludo/contas"
)

// Bills renders the month's obligations as a markdown table.
func Bills(m contas.Month, bills []contas.Bill) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Contas de %s\n\n", m)
	if len(bills) == 0 {
		b.WriteString("Nenhuma conta para este mês.\n")
		return b.String()
	}
	b.WriteString("| Vencimento | Descrição | Valor | Situação |\n")
	b.WriteString("|---|---|---:|---|\n")
	total := contas.Money{}
	open := contas.Money{}
	for _, bill := range bills {
		status := "em aberto"
		if bill.Paid {
			status = fmt.Sprintf("paga em %s", bill.PaymentDate)
		} else {
			open = open.Add(bill.ExpectedAmount)
		}
		total = total.Add(bill.ExpectedAmount)
		fmt.Fprintf(&b, "| %s | %s | %.2f | %s |\n", bill.DueDate, bill.Description, bill.ExpectedAmount.InexactFloat(), status)
	}
	fmt.Fprintf(&b, "\nTotal esperado: %.2f, em aberto: %.2f\n", total.InexactFloat(), open.InexactFloat())
	return b.String()
}

// Schedule renders a loan's amortization schedule as a markdown table.
func Schedule(loan contas.Loan, items []contas.AmortizationItem) string {
	var b strings.Builder
	name := loan.Name
	if name == "" {
		name = loan.ID
	}
	fmt.Fprintf(&b, "# Amortização de %s\n\n", name)
	fmt.Fprintf(&b, "Principal %s, parcela %s, taxa %s%% a.m., %d meses\n\n",
		loan.TotalPrincipal, loan.Installment, loan.MonthlyRate.Shift(2), loan.TermMonths)
	b.WriteString("| # | Vencimento | Juros | Amortização | Saldo devedor |\n")
	b.WriteString("|---:|---|---:|---:|---:|\n")
	for _, item := range items {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			item.Installment, loan.InstallmentDue(item.Installment),
			item.Interest.StringFixed(2), item.Principal.StringFixed(2), item.Remaining.StringFixed(2))
	}
	return b.String()
}

// Accrual renders a policy's accrual position at a date.
func Accrual(policy contas.InsurancePolicy, asOf contas.Date, pos contas.AccrualPosition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Seguro %s em %s\n\n", policy.ID, asOf)
	fmt.Fprintf(&b, "- Prêmio total: %s\n", policy.TotalPremium)
	fmt.Fprintf(&b, "- A apropriar (ativo): %s\n", pos.Unexpensed)
	fmt.Fprintf(&b, "- A pagar (passivo): %s\n", pos.Unpaid)
	return b.String()
}

// Review renders a staged statement for the reviewer.
func Review(statement contas.ImportedStatement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Extrato %s (%s)\n\n", statement.FileName, statement.Status)
	b.WriteString("| # | Data | Valor | Descrição | Alerta |\n")
	b.WriteString("|---:|---|---:|---|---|\n")
	for i, line := range statement.Transactions {
		note := ""
		if line.IsPotentialDuplicate {
			note = fmt.Sprintf("possível duplicata de %s", line.DuplicateOfTxID)
		}
		if line.Skip {
			note = strings.TrimSpace(note + " (ignorada)")
		}
		description := line.Description
		if description == "" {
			description = line.OriginalDescription
		}
		fmt.Fprintf(&b, "| %d | %s | %.2f | %s | %s |\n", i+1, line.Date, line.Amount.InexactFloat(), description, note)
	}
	return b.String()
}

// Statements renders the list of imported statements and their status.
func Statements(statements []contas.ImportedStatement) string {
	var b strings.Builder
	b.WriteString("# Extratos importados\n\n")
	if len(statements) == 0 {
		b.WriteString("Nenhum extrato importado.\n")
		return b.String()
	}
	b.WriteString("| Id | Arquivo | Conta | Linhas | Situação |\n")
	b.WriteString("|---|---|---|---:|---|\n")
	for _, statement := range statements {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s |\n",
			statement.ID, statement.FileName, statement.AccountID, len(statement.Transactions), statement.Status)
	}
	return b.String()
}

// Summary renders a month's income/expense/net figures.
func Summary(sum contas.MonthlySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Resultado de %s\n\n", sum.Month)
	fmt.Fprintf(&b, "- Receitas: %.2f\n", sum.Income.InexactFloat())
	fmt.Fprintf(&b, "- Despesas: %.2f\n", sum.Expenses.InexactFloat())
	fmt.Fprintf(&b, "- Resultado: %.2f\n", sum.Net.InexactFloat())
	return b.String()
}

// Balance renders a single account balance line.
func Balance(account contas.Account, asOf contas.Date, balance contas.Money) string {
	kind := ""
	if account.Type.IsLiability() {
		kind = " (devido)"
	}
	when := "hoje"
	if !asOf.IsZero() {
		when = asOf.String()
	}
	return fmt.Sprintf("- %s em %s: %s%s\n", account.Name, when, balance, kind)
}

// Rules renders the standardization rule list in order of precedence.
func Rules(rules []contas.StandardizationRule) string {
	var b strings.Builder
	b.WriteString("# Regras de padronização\n\n")
	if len(rules) == 0 {
		b.WriteString("Nenhuma regra cadastrada.\n")
		return b.String()
	}
	b.WriteString("| Ordem | Padrão | Categoria | Tipo | Descrição |\n")
	b.WriteString("|---:|---|---|---|---|\n")
	for i, rule := range rules {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i+1, rule.Pattern, rule.CategoryID, rule.Operation, rule.DescriptionTemplate)
	}
	return b.String()
}
