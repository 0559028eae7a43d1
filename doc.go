// Package contas is a personal-finance ledger engine: it computes account
// balances from a transaction log, derives loan amortization schedules and
// insurance premium accrual, materializes a monthly bills view by merging
// generated obligations with persisted user overrides, and ingests bank
// statements with deduplication and pattern-rule classification.
//
// Every engine operation is a pure function over an explicit LedgerState
// snapshot. Commands clone the snapshot, compute the whole mutation and return
// a new state for the caller to persist in a single replacement write.
package contas
