package wallet

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned by Find when no account matches.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAmbiguousAccount is returned by Find when several accounts match.
	ErrAmbiguousAccount = errors.New("ambiguous account")
)

// Collection is the ordered set of accounts of a user.
//
// Order is insertion order and is the display order. An account belongs to at
// most one position in the collection; two accounts may share a name.
// A Collection is not safe for concurrent use: mutations are expected to run
// one at a time, in response to user actions.
type Collection struct {
	accounts  []*Account
	now       func() time.Time
	observers []subscription
	nextID    int
}

// Option configures a Collection.
type Option func(*Collection)

// WithClock sets the clock used to timestamp transactions.
func WithClock(now func() time.Time) Option {
	return func(c *Collection) { c.now = now }
}

// NewCollection creates an empty collection.
func NewCollection(opts ...Option) *Collection {
	c := &Collection{
		accounts: make([]*Account, 0),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add creates an account from user input and appends it to the collection.
// An empty initialAmount is a zero balance.
func (c *Collection) Add(name, initialAmount, color string) (*Account, error) {
	balance, err := ParseBalance(initialAmount)
	if err != nil {
		return nil, err
	}
	a, err := NewAccount(name, color, balance)
	if err != nil {
		return nil, err
	}
	c.Append(a)
	return a, nil
}

// Append takes ownership of accounts and appends them in order.
// Accounts already in the collection are skipped.
func (c *Collection) Append(accounts ...*Account) {
	for _, a := range accounts {
		if a == nil || c.Index(a) >= 0 {
			continue
		}
		c.adopt(a)
		c.accounts = append(c.accounts, a)
		c.emit(Event{Kind: Added, Account: a})
	}
}

// Remove deletes the account from the collection. It returns false if the
// account was not a member, removing twice is safe.
func (c *Collection) Remove(a *Account) bool {
	i := c.Index(a)
	if i < 0 {
		return false
	}
	c.accounts = slices.Delete(c.accounts, i, i+1)
	a.notify = nil
	c.emit(Event{Kind: Removed, Account: a})
	return true
}

// Adjust applies raw user input to an account of the collection.
// Invalid input, or an account that is not a member, leaves everything
// unchanged and returns false.
func (c *Collection) Adjust(a *Account, op Operation, raw string) (Transaction, bool) {
	if c.Index(a) < 0 {
		return Transaction{}, false
	}
	return a.AdjustString(op, raw)
}

// List returns the accounts in display order. The slice is a copy and does
// not follow later mutations.
func (c *Collection) List() []*Account {
	return slices.Clone(c.accounts)
}

// Len returns the number of accounts.
func (c *Collection) Len() int { return len(c.accounts) }

// Index returns the position of the account, or -1.
func (c *Collection) Index(a *Account) int {
	return slices.Index(c.accounts, a)
}

// MinIDPrefix is the shortest id prefix Find accepts.
const MinIDPrefix = 4

// Find resolves a reference typed by a user into an account.
//
// The reference is tried, in order, as a 1-based position, a full id, an
// exact name and finally an id prefix of at least MinIDPrefix characters.
func (c *Collection) Find(ref string) (*Account, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrAccountNotFound)
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(c.accounts) {
			return nil, fmt.Errorf("%w: position %d out of 1..%d", ErrAccountNotFound, n, len(c.accounts))
		}
		return c.accounts[n-1], nil
	}
	for _, a := range c.accounts {
		if a.id == ref {
			return a, nil
		}
	}
	if a, err := c.unique(ref, func(a *Account) bool { return a.name == ref }); a != nil || err != nil {
		return a, err
	}
	if len(ref) >= MinIDPrefix {
		if a, err := c.unique(ref, func(a *Account) bool { return strings.HasPrefix(a.id, ref) }); a != nil || err != nil {
			return a, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, ref)
}

// unique returns the only account matching, nil if none.
func (c *Collection) unique(ref string, match func(*Account) bool) (*Account, error) {
	var found *Account
	for _, a := range c.accounts {
		if !match(a) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %q matches several accounts", ErrAmbiguousAccount, ref)
		}
		found = a
	}
	return found, nil
}

// Totals sums balances, income and expenses over all accounts.
func (c *Collection) Totals() (balance, income, expenses decimal.Decimal) {
	for _, a := range c.accounts {
		balance = balance.Add(a.balance)
		income = income.Add(a.income)
		expenses = expenses.Add(a.expenses)
	}
	return balance, income, expenses
}

// Serialize returns the snapshot of the whole collection.
func (c *Collection) Serialize() Snapshot {
	return Encode(c.accounts)
}

// Restore replaces the whole collection with the accounts of the snapshot.
// Previous accounts are discarded, not merged.
func (c *Collection) Restore(s Snapshot) {
	c.replace(Decode(s))
}

// Marshal returns the JSON snapshot of the collection.
func (c *Collection) Marshal() ([]byte, error) {
	return MarshalSnapshot(c.accounts)
}

// Unmarshal replaces the collection with the accounts of a JSON snapshot.
//
// A malformed document leaves an empty collection and returns an error
// wrapping ErrMalformedSnapshot. Unreadable entries are skipped and reported,
// the readable ones are restored.
func (c *Collection) Unmarshal(data []byte) (Schema, error) {
	accounts, schema, err := UnmarshalSnapshot(data)
	c.replace(accounts)
	return schema, err
}

func (c *Collection) replace(accounts []*Account) {
	for _, a := range c.accounts {
		a.notify = nil
	}
	c.accounts = make([]*Account, 0, len(accounts))
	for _, a := range accounts {
		if a == nil || c.Index(a) >= 0 {
			continue
		}
		c.adopt(a)
		c.accounts = append(c.accounts, a)
	}
	c.emit(Event{Kind: Restored})
}

func (c *Collection) adopt(a *Account) {
	a.now = c.now
	a.notify = c.emit
}

// Subscribe registers an observer of every mutation of the collection,
// including adjustments made directly on its accounts. The returned function
// cancels the subscription.
func (c *Collection) Subscribe(o Observer) (cancel func()) {
	c.nextID++
	id := c.nextID
	c.observers = append(c.observers, subscription{id: id, fn: o})
	return func() {
		c.observers = slices.DeleteFunc(c.observers, func(s subscription) bool { return s.id == id })
	}
}

func (c *Collection) emit(e Event) {
	for _, s := range slices.Clone(c.observers) {
		s.fn(e)
	}
}
