package wallet

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrEmptyName is returned when creating an account without a name.
var ErrEmptyName = errors.New("account name is empty")

// Account is a tracked balance with a name, an accent color and a ledger.
//
// The balance moves only through Adjust. Income and expenses are the running
// sums of the credited and debited amounts.
type Account struct {
	id           string
	name         string
	color        string
	balance      decimal.Decimal
	income       decimal.Decimal
	expenses     decimal.Decimal
	transactions []Transaction

	now    func() time.Time
	notify func(Event) // set while the account belongs to a collection
}

// NewAccount creates an account with an empty ledger.
func NewAccount(name, color string, balance decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Account{
		id:           uuid.NewString(),
		name:         name,
		color:        color,
		balance:      balance,
		transactions: make([]Transaction, 0),
	}, nil
}

func (a *Account) ID() string                { return a.id }
func (a *Account) Name() string              { return a.name }
func (a *Account) Color() string             { return a.color }
func (a *Account) Balance() decimal.Decimal  { return a.balance }
func (a *Account) Income() decimal.Decimal   { return a.income }
func (a *Account) Expenses() decimal.Decimal { return a.expenses }

// Len returns the number of transactions in the ledger.
func (a *Account) Len() int { return len(a.transactions) }

// Transactions returns a copy of the ledger in chronological order.
func (a *Account) Transactions() []Transaction {
	return slices.Clone(a.transactions)
}

// Adjust credits or debits the account and records the transaction.
// A debit may take the balance below zero.
func (a *Account) Adjust(op Operation, amount Amount) (Transaction, error) {
	if !op.Known() {
		return Transaction{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	tx := NewTransaction(op, amount, a.clock())
	a.apply(tx)
	a.transactions = append(a.transactions, tx)
	if a.notify != nil {
		a.notify(Event{Kind: Adjusted, Account: a, Transaction: tx})
	}
	return tx, nil
}

// AdjustString is Adjust for raw user input. If raw is not a valid amount, or
// op is unknown, the account is left untouched and ok is false.
func (a *Account) AdjustString(op Operation, raw string) (tx Transaction, ok bool) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return Transaction{}, false
	}
	tx, err = a.Adjust(op, amount)
	return tx, err == nil
}

// apply moves the balance and the running sums for one transaction.
func (a *Account) apply(tx Transaction) {
	switch tx.Operation {
	case Credit:
		a.balance = a.balance.Add(tx.Amount)
		a.income = a.income.Add(tx.Amount)
	case Debit:
		a.balance = a.balance.Sub(tx.Amount)
		a.expenses = a.expenses.Add(tx.Amount)
	}
}

// replay recomputes income and expenses from the ledger. The balance is left
// as it is: the persisted balance is authoritative.
func (a *Account) replay() {
	a.income, a.expenses = decimal.Zero, decimal.Zero
	for _, tx := range a.transactions {
		switch tx.Operation {
		case Credit:
			a.income = a.income.Add(tx.Amount)
		case Debit:
			a.expenses = a.expenses.Add(tx.Amount)
		}
	}
}

// Opening returns the balance before the first transaction of the ledger.
func (a *Account) Opening() decimal.Decimal {
	return a.balance.Sub(a.income).Add(a.expenses)
}

func (a *Account) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

// String returns a short description of the account, for logs.
func (a *Account) String() string {
	return fmt.Sprintf("%s (%s) %s", a.name, shortID(a.id), a.balance)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
