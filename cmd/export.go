package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "print the accounts as a JSON snapshot" }
func (*exportCmd) Usage() string {
	return `wallet export [-o <file>]

  Prints the snapshot of all accounts, with their transactions, as JSON.
  See 'wallet topic snapshot' for the format.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write the snapshot to this file instead of the standard output.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	accounts, err := loadCollection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	data, err := accounts.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	data = append(data, '\n')

	if c.output == "" {
		stdout.Write(data)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing snapshot file %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%d accounts exported to %s\n", accounts.Len(), c.output)
	return subcommands.ExitSuccess
}
