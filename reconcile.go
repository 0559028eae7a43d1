package contas

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Duplicate-matching tolerances. Fixed by observed behavior of bank exports;
// exposed for tests to assert the boundaries.
var (
	// DuplicateAmountTolerance is the maximum absolute amount difference
	// (inclusive) for two transactions to match.
	DuplicateAmountTolerance = decimal.NewFromFloat(0.01)
	// DuplicateDateToleranceDays is the maximum date difference in days.
	DuplicateDateToleranceDays = 1
)

// ApplyRules standardizes staged transactions: for each one the first rule
// whose pattern matches the original description wins and overwrites category,
// operation type and description. A rule that reclassifies a line as a
// transfer clears any investment/loan/vehicle linkage so the record stays
// consistent with its new type.
func ApplyRules(transactions []ImportedTransaction, rules []StandardizationRule) []ImportedTransaction {
	out := slices.Clone(transactions)
	for i := range out {
		for _, rule := range rules {
			if !rule.Matches(out[i].OriginalDescription) {
				continue
			}
			if rule.CategoryID != "" {
				out[i].CategoryID = rule.CategoryID
			}
			if rule.Operation != "" {
				out[i].Operation = rule.Operation
			}
			if rule.DescriptionTemplate != "" {
				out[i].Description = rule.DescriptionTemplate
			}
			if out[i].Operation == OpTransfer {
				out[i].Links = Links{TransferGroupID: out[i].Links.TransferGroupID}
			}
			break
		}
	}
	return out
}

// FlagDuplicates annotates staged transactions that likely duplicate a ledger
// transaction on the same account: amounts within one cent, matching flow
// direction, dates at most one day apart. Opening-balance entries never match.
// Matches are annotated, never discarded; the reviewer decides.
func (s *LedgerState) FlagDuplicates(staged []ImportedTransaction, accountID string) []ImportedTransaction {
	out := slices.Clone(staged)
	for i := range out {
		out[i].IsPotentialDuplicate = false
		out[i].DuplicateOfTxID = ""
		stagedAmount := out[i].Amount.Decimal().Abs()
		stagedOut := !out[i].Flow().Inbound()
		for _, tx := range s.Transactions {
			if tx.AccountID != accountID || tx.Operation == OpInitialBalance {
				continue
			}
			if tx.Flow.Inbound() == stagedOut {
				continue
			}
			diff := tx.Amount.Decimal().Abs().Sub(stagedAmount).Abs()
			if diff.GreaterThan(DuplicateAmountTolerance) {
				continue
			}
			days := tx.Date.DaysUntil(out[i].Date)
			if days < 0 {
				days = -days
			}
			if days > DuplicateDateToleranceDays {
				continue
			}
			out[i].IsPotentialDuplicate = true
			out[i].DuplicateOfTxID = tx.ID
			break
		}
	}
	return out
}

// ImportStatement parses raw content, applies the state's standardization
// rules, flags likely duplicates and stages the result for review. The staged
// statement is appended to the returned state; the ledger itself is untouched
// until commit.
func ImportStatement(s *LedgerState, accountID, fileName, content string, format StatementFormat, opts ParseOptions) (*LedgerState, ImportedStatement, error) {
	if s.Account(accountID) == nil {
		return nil, ImportedStatement{}, fmt.Errorf("account %q not found", accountID)
	}
	parsed, err := ParseStatement(content, format, opts)
	if err != nil {
		return nil, ImportedStatement{}, err
	}
	staged := ApplyRules(parsed, s.Rules)
	staged = s.FlagDuplicates(staged, accountID)

	statement := NewImportedStatement(accountID, fileName, staged)
	next := s.Clone()
	next.Statements = append(next.Statements, statement)
	return next, statement, nil
}

// ReviewStagedTransactions replaces a pending statement's staged lines with
// the reviewer's edited set (categorization, skip flags, duplicate decisions).
func ReviewStagedTransactions(s *LedgerState, statementID string, reviewed []ImportedTransaction) (*LedgerState, error) {
	next := s.Clone()
	statement := next.Statement(statementID)
	if statement == nil {
		return nil, fmt.Errorf("statement %q not found", statementID)
	}
	if statement.Status != StatementPending {
		return nil, fmt.Errorf("statement %q is already contabilized", statementID)
	}
	statement.Transactions = slices.Clone(reviewed)
	return next, nil
}

// CommitStatement turns a pending statement's staged lines into ledger
// transactions. Lines marked Skip are left out; a skipped line confirmed as a
// duplicate marks its ledger counterpart conciliated. The whole mutation is
// computed before the caller persists the returned state.
func CommitStatement(s *LedgerState, statementID string) (*LedgerState, error) {
	if s.Statement(statementID) == nil {
		return nil, fmt.Errorf("statement %q not found", statementID)
	}
	next := s.Clone()
	statement := next.Statement(statementID)
	if statement.Status != StatementPending {
		return nil, fmt.Errorf("statement %q is already contabilized", statementID)
	}

	for _, line := range statement.Transactions {
		if line.Skip {
			if line.IsPotentialDuplicate && line.DuplicateOfTxID != "" {
				if tx := next.Transaction(line.DuplicateOfTxID); tx != nil {
					tx.Conciliated = true
				}
			}
			continue
		}
		description := line.Description
		if description == "" {
			description = line.OriginalDescription
		}
		tx := NewTransaction(line.Date, statement.AccountID, line.Flow(), line.Operation, line.Amount.Abs(), description, SourceImport)
		tx.CategoryID = line.CategoryID
		tx.Links = line.Links
		tx.Conciliated = true
		if err := next.AddTransaction(tx); err != nil {
			return nil, err
		}
	}

	statement.Status = StatementContabilized
	return next, nil
}

// DiscardStatement drops a pending statement without touching the ledger.
func DiscardStatement(s *LedgerState, statementID string) (*LedgerState, error) {
	statement := s.Statement(statementID)
	if statement == nil {
		return nil, fmt.Errorf("statement %q not found", statementID)
	}
	if statement.Status != StatementPending {
		return nil, fmt.Errorf("statement %q is already contabilized", statementID)
	}
	next := s.Clone()
	next.Statements = slices.DeleteFunc(next.Statements, func(st ImportedStatement) bool { return st.ID == statementID })
	return next, nil
}
