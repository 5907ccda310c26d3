package wallet

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// newTestAccount builds an account without id, so that its JSON is stable.
func newTestAccount(name, color string, balance float64, txs ...Transaction) *Account {
	a := &Account{name: name, color: color, balance: D(balance), transactions: txs}
	a.replay()
	return a
}

func TestMarshalSnapshot(t *testing.T) {
	a := newTestAccount("Groceries", "#00ff00", 65,
		Transaction{Operation: Credit, Amount: D(20), Timestamp: jan2},
		Transaction{Operation: Debit, Amount: D(5), Timestamp: jan2.Add(time.Minute)},
	)
	empty := newTestAccount("Empty", "", 0)

	got, err := MarshalSnapshot([]*Account{a, empty})
	if err != nil {
		t.Fatalf("MarshalSnapshot() unexpected error: %v", err)
	}
	want := `{"accounts":[` +
		`{"name":"Groceries","amount":65,"color":"#00ff00","transactions":[` +
		`{"operation":"plus","amount":20,"timestamp":"2026-01-02T03:04:05Z"},` +
		`{"operation":"minus","amount":5,"timestamp":"2026-01-02T03:05:05Z"}]},` +
		`{"name":"Empty","amount":0,"color":"","transactions":[]}]}`
	if string(got) != want {
		t.Errorf("MarshalSnapshot() =\n%s\nwant\n%s", got, want)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	c := NewCollection(WithClock(fixedClock(jan2)))
	a, _ := c.Add("Groceries", "50", "#00ff00")
	a.AdjustString(Credit, "20")
	a.AdjustString(Debit, "5.25")
	b, _ := c.Add("Rent", "-100.10", "#ff0000")
	c.Add("Empty", "", "")
	b.AdjustString(Debit, "900")

	// income and expenses are never trusted, only replayed.
	a.income = D(999)
	b.expenses = D(-1)

	data, err := c.Marshal()
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	got, schema, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot() unexpected error: %v", err)
	}
	if schema != SchemaNested {
		t.Errorf("UnmarshalSnapshot() schema = %v, want nested", schema)
	}

	want := c.List()
	if len(got) != len(want) {
		t.Fatalf("UnmarshalSnapshot() decoded %d accounts, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID() != w.ID() || g.Name() != w.Name() || g.Color() != w.Color() || !g.Balance().Equal(w.Balance()) {
			t.Errorf("account %d = %v, want %v", i, g, w)
		}
		gtx, wtx := g.Transactions(), w.Transactions()
		if len(gtx) != len(wtx) {
			t.Fatalf("account %d has %d transactions, want %d", i, len(gtx), len(wtx))
		}
		for j := range wtx {
			if !gtx[j].Equal(wtx[j]) {
				t.Errorf("account %d transaction %d = %+v, want %+v", i, j, gtx[j], wtx[j])
			}
		}
	}
	if !got[0].Income().Equal(D(20)) || !got[0].Expenses().Equal(D(5.25)) {
		t.Errorf("Groceries income/expenses = %s/%s, want 20/5.25", got[0].Income(), got[0].Expenses())
	}
	if !got[1].Income().IsZero() || !got[1].Expenses().Equal(D(900)) {
		t.Errorf("Rent income/expenses = %s/%s, want 0/900", got[1].Income(), got[1].Expenses())
	}
}

func TestDecode_DerivedSums(t *testing.T) {
	s := Snapshot{Accounts: []AccountState{{
		Name:   "Mixed",
		Amount: D(7), // taken verbatim, not replayed
		Transactions: []Transaction{
			{Operation: Credit, Amount: D(10)},
			{Operation: Debit, Amount: D(2.5)},
			{Operation: "transfer", Amount: D(1000)},
			{Operation: Credit, Amount: D(0.5)},
			{Operation: Debit, Amount: D(1)},
		},
	}}}
	got := Decode(s)
	if len(got) != 1 {
		t.Fatalf("Decode() returned %d accounts, want 1", len(got))
	}
	a := got[0]
	if !a.Income().Equal(D(10.5)) {
		t.Errorf("Income() = %s, want 10.5", a.Income())
	}
	if !a.Expenses().Equal(D(3.5)) {
		t.Errorf("Expenses() = %s, want 3.5", a.Expenses())
	}
	if !a.Balance().Equal(D(7)) {
		t.Errorf("Balance() = %s, want 7", a.Balance())
	}
	if a.Len() != 5 || a.Transactions()[2].Operation != "transfer" {
		t.Errorf("unknown operation not retained: %+v", a.Transactions())
	}
	if a.ID() == "" {
		t.Error("Decode() left an account without id")
	}
}

func TestUnmarshalSnapshot_NoPriorState(t *testing.T) {
	for _, doc := range []string{"", "  ", "null", "[]", "{}", `{"other":1}`, `{"accounts":null}`} {
		got, schema, err := UnmarshalSnapshot([]byte(doc))
		if err != nil || len(got) != 0 || schema != SchemaEmpty {
			t.Errorf("UnmarshalSnapshot(%q) = %v, %v, %v, want empty without error", doc, got, schema, err)
		}
	}
}

func TestUnmarshalSnapshot_Malformed(t *testing.T) {
	for _, doc := range []string{
		`{"accounts":"not-an-array"}`,
		`{"accounts":{"name":"x"}}`,
		`42`,
		`"data"`,
		`not json`,
		`{"accounts":[`,
		`[] []`,
	} {
		got, _, err := UnmarshalSnapshot([]byte(doc))
		if !errors.Is(err, ErrMalformedSnapshot) {
			t.Errorf("UnmarshalSnapshot(%q) error = %v, want ErrMalformedSnapshot", doc, err)
		}
		if len(got) != 0 {
			t.Errorf("UnmarshalSnapshot(%q) = %v, want no account", doc, got)
		}
	}
}

func TestUnmarshalSnapshot_BareListWithLedgers(t *testing.T) {
	doc := `[
		{"name":"Cash","amount":5,"transactions":[{"operation":"plus","amount":5}]},
		{"name":"Bank","amount":300}
	]`
	got, schema, err := UnmarshalSnapshot([]byte(doc))
	if err != nil {
		t.Fatalf("UnmarshalSnapshot() unexpected error: %v", err)
	}
	if schema != SchemaNested {
		t.Errorf("schema = %v, want nested", schema)
	}
	if len(got) != 2 || got[0].Len() != 1 || !got[0].Income().Equal(D(5)) || !got[1].Balance().Equal(D(300)) {
		t.Errorf("UnmarshalSnapshot() = %v", got)
	}

	// the first entry decides: a legacy first entry makes a legacy list.
	_, schema, _ = UnmarshalSnapshot([]byte(`[{"name":"Bank"},{"name":"Cash","transactions":[]}]`))
	if schema != SchemaLegacy {
		t.Errorf("schema = %v, want legacy", schema)
	}
}

func TestUnmarshalSnapshot_Legacy(t *testing.T) {
	doc := `[
		{"name":"Cash","amount":"100","color":"#ff0000"},
		{"name":"Bank","amount":"","color":""},
		{"name":"Card","amount":-12.5,"color":"#0000ff"}
	]`
	got, schema, err := UnmarshalSnapshot([]byte(doc))
	if err != nil {
		t.Fatalf("UnmarshalSnapshot() unexpected error: %v", err)
	}
	if schema != SchemaLegacy {
		t.Errorf("schema = %v, want legacy", schema)
	}
	if len(got) != 3 {
		t.Fatalf("decoded %d accounts, want 3", len(got))
	}
	wantBalances := []float64{100, 0, -12.5}
	for i, a := range got {
		if !a.Balance().Equal(D(wantBalances[i])) {
			t.Errorf("account %d balance = %s, want %v", i, a.Balance(), wantBalances[i])
		}
		if a.Len() != 0 || !a.Income().IsZero() || !a.Expenses().IsZero() {
			t.Errorf("account %d has a ledger: %+v", i, a.Transactions())
		}
	}
	if got[0].Color() != "#ff0000" || got[0].Name() != "Cash" {
		t.Errorf("account 0 = %v", got[0])
	}
}

func TestUnmarshalSnapshot_BadEntries(t *testing.T) {
	doc := `{"accounts":[
		12,
		{"name":"Kept","amount":3,"color":"#fff","transactions":[
			{"operation":"plus","amount":"abc","timestamp":"yesterday"},
			"garbage",
			{"operation":"refund","amount":4},
			{"operation":"minus","amount":"1.5","timestamp":"2026-01-02T03:04:05.123Z"}
		]},
		{"name":"NoLedger","amount":1,"transactions":null},
		{"name":"MissingLedger","amount":2}
	]}`
	got, schema, err := UnmarshalSnapshot([]byte(doc))
	if !errors.Is(err, ErrMalformedSnapshot) {
		t.Errorf("error = %v, want ErrMalformedSnapshot for the skipped entries", err)
	}
	if schema != SchemaNested {
		t.Errorf("schema = %v, want nested", schema)
	}
	if len(got) != 3 {
		t.Fatalf("decoded %d accounts, want 3", len(got))
	}
	kept := got[0]
	if kept.Len() != 3 {
		t.Fatalf("Kept has %d transactions, want 3: %+v", kept.Len(), kept.Transactions())
	}
	txs := kept.Transactions()
	if txs[0].Operation != Credit || !txs[0].Amount.IsZero() || !txs[0].Timestamp.IsZero() {
		t.Errorf("bad fields should decode as zero values: %+v", txs[0])
	}
	if txs[1].Operation != "refund" {
		t.Errorf("unknown operation = %q, want refund", txs[1].Operation)
	}
	if want := time.Date(2026, time.January, 2, 3, 4, 5, 123000000, time.UTC); !txs[2].Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", txs[2].Timestamp, want)
	}
	if !kept.Income().IsZero() || !kept.Expenses().Equal(D(1.5)) {
		t.Errorf("Kept income/expenses = %s/%s, want 0/1.5", kept.Income(), kept.Expenses())
	}
	for _, a := range got[1:] {
		if a.Len() != 0 {
			t.Errorf("%s has transactions %+v", a.Name(), a.Transactions())
		}
	}
}

func TestTransaction_JSON(t *testing.T) {
	tx := Transaction{Operation: Debit, Amount: D(5), Timestamp: jan2}
	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"operation":"minus","amount":5,"timestamp":"2026-01-02T03:04:05Z"}`; string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}
	var back Transaction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(tx) {
		t.Errorf("json.Unmarshal() = %+v, want %+v", back, tx)
	}
	if err := json.Unmarshal([]byte(`[1]`), &back); err == nil {
		t.Error("json.Unmarshal() of a list should fail")
	}
}

func TestUnmarshalSnapshot_NegativeTransactionAmount(t *testing.T) {
	doc := `{"accounts":[{"name":"Cash","amount":10,"color":"","transactions":[
		{"operation":"plus","amount":-4,"timestamp":"2026-01-02T03:04:05Z"},
		{"operation":"plus","amount":"-1"},
		{"operation":"minus","amount":2}
	]}]}`
	got, _, err := UnmarshalSnapshot([]byte(doc))
	if !errors.Is(err, ErrMalformedSnapshot) || !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("error = %v, want ErrMalformedSnapshot and ErrInvalidTransaction", err)
	}
	if len(got) != 1 {
		t.Fatalf("decoded %d accounts, want 1", len(got))
	}
	a := got[0]
	if a.Len() != 1 || !a.Income().IsZero() || !a.Expenses().Equal(D(2)) {
		t.Errorf("Cash has %d transactions, income %s, expenses %s, want 1, 0, 2", a.Len(), a.Income(), a.Expenses())
	}
}

func TestUnmarshalSnapshot_KeepsUnreadableTimestamps(t *testing.T) {
	doc := `{"accounts":[{"name":"Cash","amount":3,"color":"","transactions":[` +
		`{"operation":"swap","amount":3,"timestamp":"yesterday"},` +
		`{"operation":"plus","amount":1,"timestamp":1700000000},` +
		`{"operation":"minus","amount":1}` +
		`]}]}`
	got, _, err := UnmarshalSnapshot([]byte(doc))
	if err != nil {
		t.Fatalf("UnmarshalSnapshot() unexpected error: %v", err)
	}
	txs := got[0].Transactions()
	if !txs[0].Timestamp.IsZero() || !txs[1].Timestamp.IsZero() {
		t.Errorf("unreadable timestamps should decode as zero times: %+v", txs)
	}

	data, err := MarshalSnapshot(got)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`{"operation":"swap","amount":3,"timestamp":"yesterday"}`,
		`{"operation":"plus","amount":1,"timestamp":1700000000}`,
		`{"operation":"minus","amount":1}`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("MarshalSnapshot() = %s, does not contain %s", data, want)
		}
	}
}
