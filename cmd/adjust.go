package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

// adjustCmd credits or debits an account, depending on op.
type adjustCmd struct {
	op     wallet.Operation
	dryRun bool
}

func (c *adjustCmd) Name() string { return string(c.op) }
func (c *adjustCmd) Synopsis() string {
	if c.op == wallet.Debit {
		return "debit an account"
	}
	return "credit an account"
}
func (c *adjustCmd) Usage() string {
	return fmt.Sprintf(`wallet %s <account> <amount>

  Records a %s of a positive amount on the account, and updates its balance.
  An invalid amount changes nothing.
  <account> is a position in the list, an id (or its prefix) or a name.
`, c.op, renderer.OperationLabel(c.op))
}

func (c *adjustCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "dry-run", false, "Show the result without saving it.")
}

func (c *adjustCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expecting an account and an amount.")
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

	if _, ok := accounts.Adjust(a, c.op, f.Arg(1)); !ok {
		fmt.Fprintf(os.Stderr, "Warning: %q is not a valid amount, nothing changed.\n", f.Arg(1))
		return subcommands.ExitFailure
	}

	if err := saveCollection(accounts, c.dryRun); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, renderer.Card(a, *currency))
	return subcommands.ExitSuccess
}
