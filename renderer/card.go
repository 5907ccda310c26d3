package renderer

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/etnz/wallet"
)

// DefaultColor is the accent color of accounts that have none.
const DefaultColor = "#808080"

var (
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(26)
	balanceStyle  = lipgloss.NewStyle().Bold(true)
	incomeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00"))
	expensesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000"))
	indexStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
)

func accent(a *wallet.Account) lipgloss.Color {
	if a.Color() == "" {
		return lipgloss.Color(DefaultColor)
	}
	return lipgloss.Color(a.Color())
}

// Card draws one account: its name in the accent color, the balance, and
// the income and expenses below it.
func Card(a *wallet.Account, currency string) string {
	return card(a, "", currency)
}

func card(a *wallet.Account, label, currency string) string {
	c := accent(a)
	title := lipgloss.NewStyle().Bold(true).Foreground(c).Render(a.Name())
	if label != "" {
		title = indexStyle.Render(label) + " " + title
	}
	flows := lipgloss.JoinHorizontal(lipgloss.Top,
		incomeStyle.Render("+"+FormatMoney(a.Income(), currency)),
		"  ",
		expensesStyle.Render("-"+FormatMoney(a.Expenses(), currency)),
	)
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		balanceStyle.Render(FormatMoney(a.Balance(), currency)),
		flows,
	)
	return cardStyle.BorderForeground(c).Render(body)
}

// Cards draws the accounts side by side, numbered by position, wrapping to a
// new row before exceeding width columns. A width that is not positive puts
// all cards on one row.
func Cards(accounts []*wallet.Account, currency string, width int) string {
	if len(accounts) == 0 {
		return "No accounts yet.\n"
	}
	var rows, row []string
	rowWidth := 0
	for i, a := range accounts {
		c := card(a, "#"+strconv.Itoa(i+1), currency)
		w := lipgloss.Width(c)
		if width > 0 && len(row) > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, c)
		rowWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}
