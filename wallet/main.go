// Command wallet tracks personal accounts from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/wallet/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	// Exits when invoked by the shell to complete the command line.
	cmd.Completion(commander).Complete(name)

	if err := cmd.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	flag.Parse()
	flush := cmd.InitLogging()

	if sub := flag.Arg(0); sub != "" && !registered(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			flush()
			os.Exit(code)
		}
	}

	status := commander.Execute(context.Background())
	flush()
	os.Exit(int(status))
}

func registered(cdr *subcommands.Commander, name string) bool {
	found := false
	cdr.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
