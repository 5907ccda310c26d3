package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type importCmd struct {
	replace bool
	dryRun  bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import accounts from a JSON snapshot" }
func (*importCmd) Usage() string {
	return `wallet import [-replace] <file>

  Adds the accounts of a snapshot file, current or older format, after the existing ones.
  Accounts whose id is already known are skipped. With -replace, the existing accounts
  are discarded first.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.replace, "replace", false, "Discard existing accounts before importing.")
	f.BoolVar(&c.dryRun, "dry-run", false, "Show the result without saving it.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one snapshot file.")
		return subcommands.ExitUsageError
	}
	file := f.Arg(0)

	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshot file: %v\n", err)
		return subcommands.ExitFailure
	}
	imported, schema, err := wallet.UnmarshalSnapshot(data)
	if err != nil {
		if len(imported) == 0 {
			fmt.Fprintf(os.Stderr, "Error reading snapshot file %q: %v\n", file, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	logger.Debug("snapshot read", zap.String("file", file), zap.Stringer("schema", schema), zap.Int("accounts", len(imported)))

	accounts, err := loadCollection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.replace {
		for _, a := range accounts.List() {
			accounts.Remove(a)
		}
	}

	added := 0
	for _, a := range imported {
		if known(accounts, a.ID()) {
			fmt.Fprintf(os.Stderr, "Skipping %q: already imported.\n", a.Name())
			continue
		}
		accounts.Append(a)
		added++
	}

	if err := saveCollection(accounts, c.dryRun); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%d accounts imported, %d in total.\n", added, accounts.Len())
	return subcommands.ExitSuccess
}

func known(c *wallet.Collection, id string) bool {
	for _, a := range c.List() {
		if a.ID() == id {
			return true
		}
	}
	return false
}
