package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type deleteCmd struct {
	dryRun bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete an account and its history" }
func (*deleteCmd) Usage() string {
	return `wallet delete <account>

  Deletes the account immediately, with all its transactions. There is no undo.
  <account> is a position in the list, an id (or its prefix) or a name.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "dry-run", false, "Show what would be deleted without saving.")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	accounts.Remove(a)

	if err := saveCollection(accounts, c.dryRun); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Account %q deleted.\n", a.Name())
	return subcommands.ExitSuccess
}
