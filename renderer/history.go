package renderer

import (
	"github.com/etnz/wallet"
)

// OperationLabel is the user facing name of an operation.
func OperationLabel(op wallet.Operation) string {
	switch op {
	case wallet.Credit:
		return "credit"
	case wallet.Debit:
		return "debit"
	case "":
		return "?"
	default:
		return string(op)
	}
}

// History renders the ledger of an account as a markdown table, oldest
// first, with the balance after each transaction.
func History(a *wallet.Account, currency string) string {
	var m markdown
	m.Printf("## %s\n\n", a.Name())

	txs := a.Transactions()
	if len(txs) == 0 {
		m.Printf("No transactions yet. Balance is %s.\n", FormatMoney(a.Balance(), currency))
		return m.String()
	}

	m.Printf("| # | Date | Operation | Amount | Balance |\n")
	m.Printf("|--:|:---|:---|---:|---:|\n")
	running := a.Opening()
	for i, tx := range txs {
		running = running.Add(tx.Signed())
		when := "-"
		if !tx.Timestamp.IsZero() {
			when = tx.Timestamp.Format("2006-01-02 15:04")
		}
		amount := FormatMoney(tx.Amount, currency)
		switch tx.Operation {
		case wallet.Credit:
			amount = "+" + amount
		case wallet.Debit:
			amount = "-" + amount
		}
		m.Printf("| %d | %s | %s | %s | %s |\n", i+1, when, cell(OperationLabel(tx.Operation)), amount, FormatMoney(running, currency))
	}
	m.Printf("\nIncome %s, expenses %s.\n", FormatMoney(a.Income(), currency), FormatMoney(a.Expenses(), currency))
	return m.String()
}
