package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the transactions of an account" }
func (*historyCmd) Usage() string {
	return `wallet history <account>

  Displays every credit and debit of the account, oldest first, with the balance after each.
  <account> is a position in the list, an id (or its prefix) or a name.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one account.")
		return subcommands.ExitUsageError
	}

	accounts, err := loadCollection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	a, ok := findAccount(accounts, f.Arg(0))
	if !ok {
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.History(a, *currency))
	return subcommands.ExitSuccess
}
