package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrMalformedSnapshot is returned when persisted data matches no known schema.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Schema identifies the shape of a persisted document.
type Schema int

const (
	// SchemaEmpty is an empty slot, null, an empty list or an object without accounts.
	SchemaEmpty Schema = iota
	// SchemaLegacy is a flat array of {name, amount, color}, without ledgers.
	SchemaLegacy
	// SchemaNested is {"accounts": [...]} with a ledger per account. A bare
	// list whose first entry has a ledger is read the same way.
	SchemaNested
)

func (s Schema) String() string {
	switch s {
	case SchemaEmpty:
		return "empty"
	case SchemaLegacy:
		return "legacy"
	case SchemaNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Snapshot is the serialized form of a whole collection.
type Snapshot struct {
	Accounts []AccountState `json:"accounts"`
}

// AccountState is the persisted form of one account.
//
// Income and expenses are not part of it: they are replayed from the
// transactions. Amount is the balance and is restored verbatim.
type AccountState struct {
	ID           string
	Name         string
	Amount       decimal.Decimal
	Color        string
	Transactions []Transaction
}

// MarshalJSON implements the json.Marshaler interface for AccountState.
func (s AccountState) MarshalJSON() ([]byte, error) {
	txs := s.Transactions
	if txs == nil {
		txs = []Transaction{}
	}
	var w jsonObjectWriter
	w.Append("name", s.Name)
	w.Append("amount", s.Amount)
	w.Append("color", s.Color)
	w.Append("transactions", txs)
	w.Optional("id", s.ID)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for AccountState.
// Wrong field types decode as zero values, see decodeAccountState.
func (s *AccountState) UnmarshalJSON(data []byte) error {
	state, err := decodeAccountState(data)
	if err != nil && state.Transactions == nil {
		return err
	}
	*s = state
	return nil
}

// Encode returns the snapshot of accounts, in order.
func Encode(accounts []*Account) Snapshot {
	s := Snapshot{Accounts: make([]AccountState, 0, len(accounts))}
	for _, a := range accounts {
		s.Accounts = append(s.Accounts, AccountState{
			ID:           a.id,
			Name:         a.name,
			Amount:       a.balance,
			Color:        a.color,
			Transactions: slices.Clone(a.transactions),
		})
	}
	return s
}

// Decode rebuilds accounts from a snapshot.
//
// The balance is taken from the snapshot, income and expenses are replayed
// from the ledger top to bottom. Transactions with an unknown operation are
// kept in the ledger and count neither as income nor as expenses.
func Decode(s Snapshot) []*Account {
	accounts := make([]*Account, 0, len(s.Accounts))
	for _, state := range s.Accounts {
		id := state.ID
		if id == "" {
			id = uuid.NewString()
		}
		txs := slices.Clone(state.Transactions)
		if txs == nil {
			txs = make([]Transaction, 0)
		}
		a := &Account{
			id:           id,
			name:         state.Name,
			color:        state.Color,
			balance:      state.Amount,
			transactions: txs,
		}
		a.replay()
		accounts = append(accounts, a)
	}
	return accounts
}

// MarshalSnapshot returns the JSON document of the accounts, in the nested schema.
func MarshalSnapshot(accounts []*Account) ([]byte, error) {
	data, err := json.Marshal(Encode(accounts))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot reads a JSON document in any known schema.
//
// It never panics on user data. Empty input, null, an empty list and an
// object without accounts are an empty result without error. Any other unknown shape is an
// empty result and an error wrapping ErrMalformedSnapshot. Entries that cannot
// be read are skipped: the others are returned with an error joining the
// problems found.
func UnmarshalSnapshot(data []byte) ([]*Account, Schema, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, SchemaEmpty, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber() // keep amounts exact until they reach decimal
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, SchemaEmpty, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if dec.More() {
		return nil, SchemaEmpty, fmt.Errorf("%w: trailing data after document", ErrMalformedSnapshot)
	}

	var entries []any
	var schema Schema
	switch v := doc.(type) {
	case nil:
		return nil, SchemaEmpty, nil
	case []any:
		schema = listSchema(v)
		if schema == SchemaEmpty {
			return nil, SchemaEmpty, nil
		}
		entries = v
	case map[string]any:
		node, err := jsonpath.Get("$.accounts", v)
		if err != nil || node == nil {
			// no accounts at all: nothing was ever saved in this slot.
			return nil, SchemaEmpty, nil
		}
		list, ok := node.([]any)
		if !ok {
			return nil, SchemaEmpty, fmt.Errorf("%w: accounts is a %T, not a list", ErrMalformedSnapshot, node)
		}
		entries, schema = list, SchemaNested
	default:
		return nil, SchemaEmpty, fmt.Errorf("%w: unexpected top level %T", ErrMalformedSnapshot, doc)
	}

	var s Snapshot
	var errs error
	for i, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("account #%d: %w", i+1, err))
			continue
		}
		state, err := decodeAccountState(raw)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("account #%d: %w", i+1, err))
			if state.Transactions == nil {
				continue // not an object
			}
		}
		s.Accounts = append(s.Accounts, state)
	}
	if errs != nil {
		errs = fmt.Errorf("%w: %w", ErrMalformedSnapshot, errs)
	}
	return Decode(s), schema, errs
}

// listSchema tells the shape of a bare list of accounts from its first entry.
func listSchema(list []any) Schema {
	if _, err := jsonpath.Get("$[0]", list); err != nil {
		return SchemaEmpty
	}
	if _, err := jsonpath.Get("$[0].transactions", list); err == nil {
		return SchemaNested
	}
	return SchemaLegacy
}

// decodeAccountState reads one account entry leniently.
//
// A non-object entry is an error with a zero state. Transactions that are
// not objects are dropped and reported in the returned error, alongside a
// usable state.
func decodeAccountState(data []byte) (AccountState, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return AccountState{}, fmt.Errorf("entry %s is not an object", data)
	}
	state := AccountState{
		ID:           rawString(raw["id"]),
		Name:         rawString(raw["name"]),
		Amount:       rawDecimal(raw["amount"]),
		Color:        rawString(raw["color"]),
		Transactions: make([]Transaction, 0),
	}

	txsRaw, ok := raw["transactions"]
	if !ok || string(txsRaw) == "null" {
		return state, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(txsRaw, &entries); err != nil {
		return state, fmt.Errorf("%q: transactions is not a list", state.Name)
	}
	var errs error
	for i, e := range entries {
		var tx Transaction
		if err := json.Unmarshal(e, &tx); err != nil {
			errs = errors.Join(errs, fmt.Errorf("%q: transaction #%d: %w", state.Name, i+1, err))
			continue
		}
		state.Transactions = append(state.Transactions, tx)
	}
	return state, errs
}
