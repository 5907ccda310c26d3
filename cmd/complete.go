package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// accountCommands take an account reference as first argument.
var accountCommands = map[string]bool{
	"delete":  true,
	"plus":    true,
	"minus":   true,
	"history": true,
}

// Completion describes the registered subcommands and their flags for shell
// completion.
func Completion(cdr *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	cdr.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: flagPredictors(f)}
		switch {
		case accountCommands[c.Name()]:
			sub.Args = complete.PredictFunc(predictAccounts)
		case c.Name() == "import":
			sub.Args = predict.Files("*.json")
		case c.Name() == "slots":
			sub.Flags["rm"] = complete.PredictFunc(predictSlots)
		}
		root.Sub[c.Name()] = sub
	})
	return root
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}

// predictAccounts suggests the names of the saved accounts.
func predictAccounts(prefix string) []string {
	c := wallet.NewCollection()
	if _, err := wallet.Load(openStore(), *storeKey, c); err != nil {
		return nil
	}
	var names []string
	for _, a := range c.List() {
		if strings.HasPrefix(a.Name(), prefix) {
			names = append(names, a.Name())
		}
	}
	return names
}

// predictSlots suggests the keys saved in the store.
func predictSlots(prefix string) []string {
	keys, err := openStore().Keys()
	if err != nil {
		return nil
	}
	var matches []string
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			matches = append(matches, k)
		}
	}
	return matches
}
