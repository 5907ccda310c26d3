package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type slotsCmd struct {
	remove string
}

func (*slotsCmd) Name() string     { return "slots" }
func (*slotsCmd) Synopsis() string { return "list or remove the snapshots saved in the store" }
func (*slotsCmd) Usage() string {
	return `wallet slots [-rm <key>]

  Lists the snapshots saved in the store folder, the one in use is marked
  with '*'. Damaged snapshots are backed up in '<key>.bak' slots.
`
}

func (c *slotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.remove, "rm", "", "Remove this snapshot from the store.")
}

func (c *slotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Error: unexpected arguments.")
		return subcommands.ExitUsageError
	}
	d := openStore()

	if c.remove != "" {
		if c.remove == *storeKey {
			fmt.Fprintf(os.Stderr, "Error: %q is the snapshot in use.\n", c.remove)
			return subcommands.ExitFailure
		}
		if err := d.RemoveItem(c.remove); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		logger.Debug("slot removed", zap.String("store", d.Path()), zap.String("key", c.remove))
		fmt.Fprintf(stdout, "Snapshot %q removed.\n", c.remove)
		return subcommands.ExitSuccess
	}

	keys, err := d.Keys()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(keys) == 0 {
		fmt.Fprintf(stdout, "No snapshots in %s yet.\n", d.Path())
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(stdout, "Snapshots in %s:\n", d.Path())
	for _, key := range keys {
		mark := " "
		if key == *storeKey {
			mark = "*"
		}
		fmt.Fprintf(stdout, "%s %s\n", mark, key)
	}
	return subcommands.ExitSuccess
}
