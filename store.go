package contas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is the generic persistence collaborator: get/set of serialized JSON by
// key. Its only contract is "load returns the last-saved value or nothing;
// save replaces the value for a key", with no transactions and no partial writes.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
}

// ErrNoValue is returned by a Store when a key has never been saved.
var ErrNoValue = errors.New("no value for key")

// DirStore keeps one JSON file per key under a directory.
type DirStore struct {
	dir string
}

// NewDirStore opens (creating if needed) a directory-backed store.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create store directory %q: %w", dir, err)
	}
	return &DirStore{dir: dir}, nil
}

func (d *DirStore) path(key string) string { return filepath.Join(d.dir, key+".json") }

// Get returns the last-saved value for the key, or ErrNoValue.
func (d *DirStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrNoValue, key)
	}
	return data, err
}

// Set replaces the value for the key. The write goes through a temp file and
// rename so a crash never leaves a half-written value.
func (d *DirStore) Set(key string, data []byte) error {
	tmp := d.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	return os.Rename(tmp, d.path(key))
}

// Store keys, one per entity collection.
const (
	keyAccounts     = "accounts"
	keyCategories   = "categories"
	keyTransactions = "transactions"
	keyLoans        = "loans"
	keyPolicies     = "policies"
	keyBills        = "bills"
	keyRules        = "rules"
	keyStatements   = "statements"
)

// LoadState builds a full snapshot from the store. A key that was never saved
// loads as its empty default.
func LoadState(store Store) (*LedgerState, error) {
	s := NewLedgerState()
	for key, target := range map[string]any{
		keyAccounts:     &s.Accounts,
		keyCategories:   &s.Categories,
		keyTransactions: &s.Transactions,
		keyLoans:        &s.Loans,
		keyPolicies:     &s.Policies,
		keyBills:        &s.Bills,
		keyRules:        &s.Rules,
		keyStatements:   &s.Statements,
	} {
		data, err := store.Get(key)
		if errors.Is(err, ErrNoValue) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", key, err)
		}
		if err := json.Unmarshal(data, target); err != nil {
			return nil, fmt.Errorf("decoding %q: %w", key, err)
		}
	}
	return s, nil
}

// SaveState replaces every collection in the store with the snapshot's
// content. Callers compute the full mutation first and save once.
func SaveState(store Store, s *LedgerState) error {
	for key, source := range map[string]any{
		keyAccounts:     s.Accounts,
		keyCategories:   s.Categories,
		keyTransactions: s.Transactions,
		keyLoans:        s.Loans,
		keyPolicies:     s.Policies,
		keyBills:        s.Bills,
		keyRules:        s.Rules,
		keyStatements:   s.Statements,
	} {
		data, err := json.MarshalIndent(source, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %q: %w", key, err)
		}
		if err := store.Set(key, data); err != nil {
			return fmt.Errorf("saving %q: %w", key, err)
		}
	}
	return nil
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore map[string][]byte

func (m MemStore) Get(key string) ([]byte, error) {
	data, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoValue, key)
	}
	return data, nil
}

func (m MemStore) Set(key string, data []byte) error {
	m[key] = data
	return nil
}
