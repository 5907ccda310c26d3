package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	table bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "show all accounts" }
func (*listCmd) Usage() string {
	return `wallet list [-table]

  Shows every account as a card, in order, followed by the totals.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.table, "table", false, "Show a table instead of cards.")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	accounts, err := loadCollection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.table {
		printMarkdown(renderer.Summary(accounts.List(), *currency))
		return subcommands.ExitSuccess
	}

	fmt.Fprint(stdout, renderer.Cards(accounts.List(), *currency, termWidth()))
	if accounts.Len() > 0 {
		balance, income, expenses := accounts.Totals()
		fmt.Fprintf(stdout, "Total %s (income %s, expenses %s)\n",
			renderer.FormatMoney(balance, *currency),
			renderer.FormatMoney(income, *currency),
			renderer.FormatMoney(expenses, *currency))
	}
	return subcommands.ExitSuccess
}
