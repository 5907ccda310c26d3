package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/wallet"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func groceries(t *testing.T) (*wallet.Collection, *wallet.Account) {
	t.Helper()
	at := time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)
	c := wallet.NewCollection(wallet.WithClock(func() time.Time { return at }))
	a, err := c.Add("Groceries", "50", "#00ff00")
	if err != nil {
		t.Fatal(err)
	}
	a.AdjustString(wallet.Credit, "20")
	a.AdjustString(wallet.Debit, "5")
	return c, a
}

func TestFormatMoney(t *testing.T) {
	testCases := []struct {
		value    string
		currency string
		want     string
	}{
		{"65", "USD", "$65.00"},
		{"1234567.891", "USD", "$1,234,567.89"},
		{"-30", "USD", "-$30.00"},
		{"0.005", "usd", "$0.01"},
		{"100000000000000000", "USD", "$100,000,000,000,000,000.00"},
		{"-123456789012345678.5", "USD", "-$123,456,789,012,345,678.50"},
		{"92233720368547758.07", "USD", "$92,233,720,368,547,758.07"},
		{"12.5", "", "12.50"},
		{"12.5", "ZZZ", "12.50 ZZZ"},
	}
	for _, tc := range testCases {
		if got := FormatMoney(d(tc.value), tc.currency); got != tc.want {
			t.Errorf("FormatMoney(%s, %q) = %q, want %q", tc.value, tc.currency, got, tc.want)
		}
	}
}

func TestSignedMoney(t *testing.T) {
	if got := SignedMoney(d("0"), "USD"); got != "-" {
		t.Errorf("SignedMoney(0) = %q, want -", got)
	}
	if got := SignedMoney(d("3"), "USD"); got != "+$3.00" {
		t.Errorf("SignedMoney(3) = %q, want +$3.00", got)
	}
	if got := SignedMoney(d("-3"), "USD"); got != "-$3.00" {
		t.Errorf("SignedMoney(-3) = %q, want -$3.00", got)
	}
}

func TestCard(t *testing.T) {
	_, a := groceries(t)
	got := Card(a, "USD")
	for _, want := range []string{"Groceries", "$65.00", "+$20.00", "-$5.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("Card() does not contain %q:\n%s", want, got)
		}
	}
}

func TestCards(t *testing.T) {
	c, _ := groceries(t)
	c.Add("Rent", "-10", "")
	one := Cards(c.List(), "USD", 0)
	if !strings.Contains(one, "#1") || !strings.Contains(one, "#2") || !strings.Contains(one, "Rent") {
		t.Errorf("Cards() misses a card:\n%s", one)
	}
	// a narrow terminal puts each card on its own row, so more lines.
	narrow := Cards(c.List(), "USD", 10)
	if strings.Count(narrow, "\n") <= strings.Count(one, "\n") {
		t.Errorf("Cards() with a narrow width did not wrap:\n%s", narrow)
	}
	if got := Cards(nil, "USD", 80); got != "No accounts yet.\n" {
		t.Errorf("Cards(nil) = %q", got)
	}
}

func TestHistory(t *testing.T) {
	_, a := groceries(t)
	got := History(a, "USD")
	want := "## Groceries\n\n" +
		"| # | Date | Operation | Amount | Balance |\n" +
		"|--:|:---|:---|---:|---:|\n" +
		"| 1 | 2026-03-04 09:30 | credit | +$20.00 | $70.00 |\n" +
		"| 2 | 2026-03-04 09:30 | debit | -$5.00 | $65.00 |\n" +
		"\nIncome $20.00, expenses $5.00.\n"
	if got != want {
		t.Errorf("History() =\n%s\nwant\n%s", got, want)
	}
}

func TestHistory_Empty(t *testing.T) {
	a, _ := wallet.NewAccount("Fresh", "", d("3"))
	got := History(a, "USD")
	if !strings.Contains(got, "No transactions yet. Balance is $3.00.") {
		t.Errorf("History() = %q", got)
	}
}

func TestSummary(t *testing.T) {
	c, _ := groceries(t)
	c.Add("Side | Hustle", "-15", "")
	got := Summary(c.List(), "USD")
	for _, want := range []string{
		"| 1 | Groceries | $65.00 | $20.00 | $5.00 | 2 |",
		`| 2 | Side \| Hustle | -$15.00 | $0.00 | $0.00 | 0 |`,
		"| | **Total** | **$50.00** | $20.00 | $5.00 | |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary() does not contain %q:\n%s", want, got)
		}
	}
}

func TestTerminal(t *testing.T) {
	_, a := groceries(t)
	got, err := Terminal(History(a, "USD"), 80)
	if err != nil {
		t.Fatalf("Terminal() unexpected error: %v", err)
	}
	if !strings.Contains(got, "Groceries") || !strings.Contains(got, "$65.00") {
		t.Errorf("Terminal() lost content:\n%s", got)
	}
}
