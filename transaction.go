package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownOperation is returned for an operation that is neither a credit nor a debit.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrInvalidTransaction is returned when a persisted transaction cannot enter a ledger.
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// Operation identifies the direction of a balance adjustment.
//
// The persisted values are "plus" and "minus". Any other value read from a
// snapshot is kept verbatim so that it survives a save.
type Operation string

// Operations known to the ledger.
const (
	Credit Operation = "plus"
	Debit  Operation = "minus"
)

// ParseOperation parses user input into a known Operation.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plus", "credit", "+":
		return Credit, nil
	case "minus", "debit", "-":
		return Debit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
}

// Known reports whether o is Credit or Debit.
func (o Operation) Known() bool { return o == Credit || o == Debit }

// Transaction is a single adjustment recorded in an account ledger.
//
// Transactions are values: the ledger only ever hands out copies.
type Transaction struct {
	Operation Operation
	Amount    decimal.Decimal // magnitude, never signed
	Timestamp time.Time

	// rawTimestamp is the persisted JSON of a timestamp that is not a valid
	// RFC 3339 time. It is written back as is.
	rawTimestamp string
}

// NewTransaction creates a transaction for a validated amount.
func NewTransaction(op Operation, amount Amount, at time.Time) Transaction {
	return Transaction{Operation: op, Amount: amount.Decimal(), Timestamp: at}
}

// Signed returns the effect of the transaction on a balance: the amount for a
// credit, its opposite for a debit and zero for an unknown operation.
func (t Transaction) Signed() decimal.Decimal {
	switch t.Operation {
	case Credit:
		return t.Amount
	case Debit:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// Equal reports whether both transactions hold the same operation, amount and instant.
func (t Transaction) Equal(u Transaction) bool {
	return t.Operation == u.Operation && t.Amount.Equal(u.Amount) && t.Timestamp.Equal(u.Timestamp) && t.rawTimestamp == u.rawTimestamp
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("operation", t.Operation)
	w.Append("amount", t.Amount)
	switch {
	case !t.Timestamp.IsZero():
		w.Append("timestamp", t.Timestamp.Format(time.RFC3339Nano))
	case t.rawTimestamp != "":
		w.Append("timestamp", json.RawMessage(t.rawTimestamp))
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
//
// Decoding is lenient: a field of the wrong type decodes as its zero value,
// and a timestamp that is not RFC 3339 text is kept verbatim for the next
// save. An entry that is not a JSON object, or a negative amount, is an
// error wrapping ErrInvalidTransaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return fmt.Errorf("%w: %s is not an object", ErrInvalidTransaction, data)
	}
	amount := rawDecimal(raw["amount"])
	if amount.IsNegative() {
		return fmt.Errorf("%w: negative amount %s", ErrInvalidTransaction, amount)
	}
	var ts string
	at, err := time.Parse(time.RFC3339Nano, rawString(raw["timestamp"]))
	if err != nil {
		at = time.Time{}
		if r := raw["timestamp"]; len(r) > 0 && string(r) != "null" {
			ts = string(r)
		}
	}
	*t = Transaction{
		Operation:    Operation(rawString(raw["operation"])),
		Amount:       amount,
		Timestamp:    at,
		rawTimestamp: ts,
	}
	return nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// rawDecimal reads a JSON number or a numeric string. Anything else is zero.
func rawDecimal(raw json.RawMessage) decimal.Decimal {
	var d decimal.Decimal
	if len(raw) == 0 || d.UnmarshalJSON(raw) != nil {
		return decimal.Zero
	}
	return d
}
