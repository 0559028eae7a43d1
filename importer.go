package contas

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// StatementFormat identifies a supported bank export format.
type StatementFormat string

const (
	// FormatAuto sniffs the format from the content.
	FormatAuto StatementFormat = "auto"
	// FormatDelimited is a delimited text file with a header row; the
	// separator (tab or comma) is auto-detected.
	FormatDelimited StatementFormat = "delimited"
	// FormatOFX is the minimal tag-based bank export (<STMTTRN> blocks).
	FormatOFX StatementFormat = "ofx"
	// FormatJSON is a JSON bank export; field locations are jsonpath
	// expressions (see JSONPaths).
	FormatJSON StatementFormat = "json"
)

// ParseStatementFormat parses a user-supplied format name.
func ParseStatementFormat(s string) (StatementFormat, error) {
	switch f := StatementFormat(s); f {
	case FormatAuto, FormatDelimited, FormatOFX, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown statement format %q", s)
}

// JSONPaths locates statement fields inside a JSON bank export.
type JSONPaths struct {
	Rows        string // path selecting the list of rows
	Date        string // path of the date field, relative to a row
	Amount      string // path of the amount field, relative to a row
	Description string // path of the description field, relative to a row
}

// DefaultJSONPaths matches the common {"transactions":[{date,amount,description}]} shape.
func DefaultJSONPaths() JSONPaths {
	return JSONPaths{Rows: "$.transactions[*]", Date: "$.date", Amount: "$.amount", Description: "$.description"}
}

// ParseOptions tune statement parsing.
type ParseOptions struct {
	Currency  string // currency for parsed amounts; default DefaultCurrency
	JSONPaths JSONPaths
}

// ParseStatement parses raw bank-export content into normalized staged
// transactions. Malformed rows are skipped; parsing fails only when no row at
// all could be parsed.
func ParseStatement(content string, format StatementFormat, opts ParseOptions) ([]ImportedTransaction, error) {
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.JSONPaths == (JSONPaths{}) {
		opts.JSONPaths = DefaultJSONPaths()
	}
	if format == FormatAuto || format == "" {
		format = sniffFormat(content)
	}

	var txs []ImportedTransaction
	var err error
	switch format {
	case FormatDelimited:
		txs, err = parseDelimited(content, opts.Currency)
	case FormatOFX:
		txs, err = parseOFX(content, opts.Currency)
	case FormatJSON:
		txs, err = parseJSON(content, opts)
	default:
		return nil, fmt.Errorf("unknown statement format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, fmt.Errorf("no transactions could be parsed from the statement")
	}
	return txs, nil
}

func sniffFormat(content string) StatementFormat {
	trimmed := strings.TrimSpace(content)
	upper := strings.ToUpper(trimmed)
	switch {
	case strings.Contains(upper, "<STMTTRN>") || strings.HasPrefix(upper, "<OFX"):
		return FormatOFX
	case strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "["):
		return FormatJSON
	default:
		return FormatDelimited
	}
}

// parseDelimited reads a header-rowed text export. Header columns are matched
// case- and accent-insensitively against date/amount/description synonyms in
// Portuguese and English.
func parseDelimited(content, currency string) ([]ImportedTransaction, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var header []string
	sep := ""
	dateCol, amountCol, descCol := -1, -1, -1

	var txs []ImportedTransaction
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header == nil {
			sep = detectSeparator(line)
			header = strings.Split(line, sep)
			for i, cell := range header {
				switch foldHeader(cell) {
				case "data", "date", "dia":
					dateCol = i
				case "valor", "amount", "montante", "value":
					amountCol = i
				case "descricao", "description", "historico", "memo", "lancamento":
					descCol = i
				}
			}
			if dateCol < 0 || amountCol < 0 || descCol < 0 {
				return nil, fmt.Errorf("statement header is missing a date, amount or description column")
			}
			continue
		}
		cells := strings.Split(line, sep)
		if len(cells) <= dateCol || len(cells) <= amountCol || len(cells) <= descCol {
			continue // short row, skip
		}
		day, err := parseStatementDate(strings.TrimSpace(cells[dateCol]))
		if err != nil {
			continue
		}
		amount, err := ParseAmount(strings.TrimSpace(cells[amountCol]))
		if err != nil {
			continue
		}
		txs = append(txs, newStagedTransaction(day, amount, strings.TrimSpace(cells[descCol]), currency))
	}
	if header == nil {
		return nil, fmt.Errorf("statement is empty")
	}
	return txs, nil
}

func detectSeparator(header string) string {
	if strings.Count(header, "\t") >= strings.Count(header, ",") {
		return "\t"
	}
	return ","
}

// foldHeader lowercases a header cell and strips the accents that show up in
// Brazilian bank exports.
func foldHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(
		"á", "a", "à", "a", "â", "a", "ã", "a",
		"é", "e", "ê", "e",
		"í", "i",
		"ó", "o", "ô", "o", "õ", "o",
		"ú", "u", "ü", "u",
		"ç", "c",
	)
	return replacer.Replace(s)
}

// ParseAmount normalizes a statement amount in Brazilian ("1.234,56") or plain
// decimal notation, preserving the sign.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	if strings.Contains(s, ",") {
		// Brazilian notation: dots are thousands separators.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

var statementDateFormats = []string{"2006-01-02", "02/01/2006", "2006-1-2", "2/1/2006", "02/01/06"}

func parseStatementDate(s string) (Date, error) {
	for _, format := range statementDateFormats {
		if t, err := parseDateAs(s, format); err == nil {
			return t, nil
		}
	}
	return Date{}, fmt.Errorf("unparseable date %q", s)
}

func parseDateAs(s, format string) (Date, error) {
	t, err := time.Parse(format, s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Date()), nil
}

// parseOFX reads <STMTTRN> blocks of the tag-based bank export. DTPOSTED is
// YYYYMMDD (optionally followed by a time suffix), TRNAMT a plain decimal and
// MEMO the description.
func parseOFX(content, currency string) ([]ImportedTransaction, error) {
	var txs []ImportedTransaction
	rest := content
	for {
		start := strings.Index(strings.ToUpper(rest), "<STMTTRN>")
		if start < 0 {
			break
		}
		rest = rest[start+len("<STMTTRN>"):]
		end := strings.Index(strings.ToUpper(rest), "</STMTTRN>")
		block := rest
		if end >= 0 {
			block = rest[:end]
			rest = rest[end+len("</STMTTRN>"):]
		} else {
			rest = ""
		}

		posted := ofxField(block, "DTPOSTED")
		amt := ofxField(block, "TRNAMT")
		memo := ofxField(block, "MEMO")
		if posted == "" || amt == "" {
			continue
		}
		if len(posted) > 8 {
			posted = posted[:8]
		}
		day, err := parseDateAs(posted, "20060102")
		if err != nil {
			continue
		}
		amount, err := ParseAmount(amt)
		if err != nil {
			continue
		}
		txs = append(txs, newStagedTransaction(day, amount, memo, currency))
	}
	return txs, nil
}

// ofxField extracts a tag value from an OFX block; values run to end of line
// or to the next tag.
func ofxField(block, tag string) string {
	upper := strings.ToUpper(block)
	i := strings.Index(upper, "<"+tag+">")
	if i < 0 {
		return ""
	}
	value := block[i+len(tag)+2:]
	if j := strings.IndexAny(value, "<\r\n"); j >= 0 {
		value = value[:j]
	}
	return strings.TrimSpace(value)
}

// parseJSON reads a JSON bank export, locating rows and fields with jsonpath
// expressions.
func parseJSON(content string, opts ParseOptions) ([]ImportedTransaction, error) {
	var doc any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON statement: %w", err)
	}
	rows, err := jsonpath.Get(opts.JSONPaths.Rows, doc)
	if err != nil {
		return nil, fmt.Errorf("rows path %q: %w", opts.JSONPaths.Rows, err)
	}
	list, ok := rows.([]any)
	if !ok {
		return nil, fmt.Errorf("rows path %q did not select a list", opts.JSONPaths.Rows)
	}

	var txs []ImportedTransaction
	for _, row := range list {
		dateVal, err := jsonpath.Get(opts.JSONPaths.Date, row)
		if err != nil {
			continue
		}
		amountVal, err := jsonpath.Get(opts.JSONPaths.Amount, row)
		if err != nil {
			continue
		}
		descVal, _ := jsonpath.Get(opts.JSONPaths.Description, row)

		day, err := parseStatementDate(fmt.Sprint(dateVal))
		if err != nil {
			continue
		}
		var amount decimal.Decimal
		switch v := amountVal.(type) {
		case float64:
			amount = decimal.NewFromFloat(v)
		case string:
			amount, err = ParseAmount(v)
			if err != nil {
				continue
			}
		default:
			continue
		}
		desc := ""
		if descVal != nil {
			desc = fmt.Sprint(descVal)
		}
		txs = append(txs, newStagedTransaction(day, amount, desc, opts.Currency))
	}
	return txs, nil
}

// newStagedTransaction derives the default operation type from the amount's
// sign: negative is an expense (despesa), positive an income (receita).
func newStagedTransaction(day Date, amount decimal.Decimal, description, currency string) ImportedTransaction {
	op := OpIncome
	if amount.IsNegative() {
		op = OpExpense
	}
	return ImportedTransaction{
		Date:                day,
		Amount:              M(amount, currency),
		OriginalDescription: description,
		Description:         description,
		Operation:           op,
	}
}
