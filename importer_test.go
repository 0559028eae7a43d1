package contas

import (
	"testing"
)

func TestParseStatement_DelimitedTab(t *testing.T) {
	full := "Data\tValor\tDescrição\n" +
		"2024-05-10\t-1.234,56\tSUPERMERCADO PAO\n" +
		"11/05/2024\t250,00\tPIX RECEBIDO\n" +
		"bogus-date\t10,00\tSKIPPED LINE\n" +
		"2024-05-12\tnot-a-number\tSKIPPED TOO\n"

	txs, err := ParseStatement(full, FormatAuto, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("parsed %d rows, want 2 (malformed rows skipped)", len(txs))
	}

	first := txs[0]
	if first.Date != NewDate(2024, 5, 10) {
		t.Errorf("first date = %s", first.Date)
	}
	if !first.Amount.Equal(brl(-1234.56)) {
		t.Errorf("first amount = %s, want -1234.56", first.Amount)
	}
	if first.Operation != OpExpense {
		t.Errorf("negative amount should default to expense, got %q", first.Operation)
	}
	if first.Flow() != FlowOut {
		t.Errorf("first flow = %q, want out", first.Flow())
	}

	second := txs[1]
	if second.Date != NewDate(2024, 5, 11) {
		t.Errorf("second date = %s (dd/mm/yyyy not recognized)", second.Date)
	}
	if !second.Amount.Equal(brl(250)) {
		t.Errorf("second amount = %s, want 250.00", second.Amount)
	}
	if second.Operation != OpIncome {
		t.Errorf("positive amount should default to income, got %q", second.Operation)
	}
}

func TestParseStatement_DelimitedCommaSeparator(t *testing.T) {
	content := "date,amount,description\n" +
		"2024-06-01,-42.50,UBER TRIP\n"
	txs, err := ParseStatement(content, FormatDelimited, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("parsed %d rows, want 1", len(txs))
	}
	if !txs[0].Amount.Equal(brl(-42.50)) {
		t.Errorf("amount = %s, want -42.50", txs[0].Amount)
	}
}

func TestParseStatement_MissingColumnsFails(t *testing.T) {
	content := "Data,Valor\n2024-05-10,-10,00\n"
	if _, err := ParseStatement(content, FormatDelimited, ParseOptions{}); err == nil {
		t.Fatal("expected error for missing description column")
	}
}

func TestParseStatement_NothingParsedFails(t *testing.T) {
	content := "Data,Valor,Descrição\nbogus,bogus,bogus\n"
	if _, err := ParseStatement(content, FormatDelimited, ParseOptions{}); err == nil {
		t.Fatal("expected error when zero rows parse")
	}
}

func TestParseStatement_OFX(t *testing.T) {
	content := `<OFX>
<BANKTRANLIST>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240510120000
<TRNAMT>-150.00
<MEMO>POSTO SHELL
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240512
<TRNAMT>2500.00
<MEMO>SALARIO
</STMTTRN>
</BANKTRANLIST>
</OFX>`

	txs, err := ParseStatement(content, FormatAuto, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("parsed %d blocks, want 2", len(txs))
	}
	if txs[0].Date != NewDate(2024, 5, 10) {
		t.Errorf("DTPOSTED with time suffix not normalized: %s", txs[0].Date)
	}
	if !txs[0].Amount.Equal(brl(-150)) {
		t.Errorf("amount = %s, want -150.00", txs[0].Amount)
	}
	if txs[0].OriginalDescription != "POSTO SHELL" {
		t.Errorf("memo = %q", txs[0].OriginalDescription)
	}
	if txs[1].Operation != OpIncome {
		t.Errorf("credit should default to income, got %q", txs[1].Operation)
	}
}

func TestParseStatement_JSON(t *testing.T) {
	content := `{"transactions":[
	  {"date":"2024-05-10","amount":-99.9,"description":"FARMACIA"},
	  {"date":"2024-05-11","amount":"1.000,00","description":"TED RECEBIDA"},
	  {"date":"oops","amount":1,"description":"SKIPPED"}
	]}`
	txs, err := ParseStatement(content, FormatAuto, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("parsed %d rows, want 2", len(txs))
	}
	if !txs[0].Amount.Equal(brl(-99.9)) {
		t.Errorf("numeric amount = %s, want -99.90", txs[0].Amount)
	}
	if !txs[1].Amount.Equal(brl(1000)) {
		t.Errorf("string amount = %s, want 1000.00", txs[1].Amount)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"-1.234,56", "-1234.56"},
		{"250,00", "250.00"},
		{"42.50", "42.50"},
		{"-42.50", "-42.50"},
		{"R$ 10,00", "10.00"},
		{"1000", "1000"},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if err != nil {
			t.Errorf("ParseAmount(%q): %v", tc.in, err)
			continue
		}
		if !got.Equal(dec(tc.want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
	if _, err := ParseAmount(""); err == nil {
		t.Error("empty amount should fail")
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Error("non-numeric amount should fail")
	}
}
