package renderer

import (
	"github.com/etnz/wallet"
	"github.com/shopspring/decimal"
)

// Summary renders all accounts as a markdown table with a total row.
func Summary(accounts []*wallet.Account, currency string) string {
	var m markdown
	m.Printf("## Accounts\n\n")
	if len(accounts) == 0 {
		m.Printf("No accounts yet.\n")
		return m.String()
	}
	m.Printf("| # | Account | Balance | Income | Expenses | Transactions |\n")
	m.Printf("|--:|:---|---:|---:|---:|--:|\n")
	var balance, income, expenses decimal.Decimal
	for i, a := range accounts {
		m.Printf("| %d | %s | %s | %s | %s | %d |\n", i+1, cell(a.Name()),
			FormatMoney(a.Balance(), currency),
			FormatMoney(a.Income(), currency),
			FormatMoney(a.Expenses(), currency),
			a.Len())
		balance = balance.Add(a.Balance())
		income = income.Add(a.Income())
		expenses = expenses.Add(a.Expenses())
	}
	m.Printf("| | **Total** | **%s** | %s | %s | |\n",
		FormatMoney(balance, currency), FormatMoney(income, currency), FormatMoney(expenses, currency))
	return m.String()
}
