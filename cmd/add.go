package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	name   string
	amount string
	color  string
	dryRun bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "create a new account" }
func (*addCmd) Usage() string {
	return `wallet add -name <name> [-amount <initial balance>] [-color <#rrggbb>]

  Creates an account at the end of the list, with an empty history.
  The initial balance may be negative and defaults to zero.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the account (required).")
	f.StringVar(&c.amount, "amount", "", "Initial balance.")
	f.StringVar(&c.color, "color", renderer.DefaultColor, "Accent color of the account card.")
	f.BoolVar(&c.dryRun, "dry-run", false, "Show the account without saving it.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" && f.NArg() > 0 {
		c.name = f.Arg(0)
	}
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}

	accounts, err := loadCollection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	a, err := accounts.Add(c.name, c.amount, c.color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating account: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := saveCollection(accounts, c.dryRun); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, renderer.Card(a, *currency))
	fmt.Fprintf(stdout, "Account #%d created.\n", accounts.Len())
	return subcommands.ExitSuccess
}
