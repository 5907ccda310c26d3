// Package cmd implements the CLI application to manage personal accounts.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/renderer"
	"github.com/etnz/wallet/store"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "accounts")
	c.Register(&deleteCmd{}, "accounts")
	c.Register(&adjustCmd{op: wallet.Credit}, "accounts")
	c.Register(&adjustCmd{op: wallet.Debit}, "accounts")

	c.Register(&listCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")

	c.Register(&exportCmd{}, "snapshot")
	c.Register(&importCmd{}, "snapshot")
	c.Register(&slotsCmd{}, "snapshot")

	c.Register(&topicCmd{}, "help")
	c.Register(&AssistCmd{}, "help")
}

const (
	EnvStore    = "WALLET_STORE"
	EnvKey      = "WALLET_KEY"
	EnvCurrency = "WALLET_CURRENCY"
	EnvVerbose  = "WALLET_VERBOSE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storePath = flag.String("store", ".wallet", "Path to the folder where accounts are saved. Env "+EnvStore+".")
	storeKey  = flag.String("key", wallet.DefaultKey, "Name of the saved snapshot in the store. Env "+EnvKey+".")
	currency  = flag.String("currency", "USD", "ISO code of the currency used to display amounts. Env "+EnvCurrency+".")
	Verbose   = flag.Bool("v", false, "Log details on stderr. Env "+EnvVerbose+".")
)

// envFlags maps global flags to the environment variables that set their default.
var envFlags = []struct{ flag, env string }{
	{"store", EnvStore},
	{"key", EnvKey},
	{"currency", EnvCurrency},
	{"v", EnvVerbose},
}

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

var logger = zap.NewNop()

// LoadEnv reads the optional .env files (".env" by default) into the
// environment, and uses the environment as defaults of the global flags.
// It must be called before flag.Parse.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load environment file: %w", err)
	}
	return applyEnv(flag.CommandLine, os.LookupEnv)
}

func applyEnv(set *flag.FlagSet, lookup func(string) (string, bool)) error {
	var errs []error
	for _, ef := range envFlags {
		v, ok := lookup(ef.env)
		if !ok || v == "" {
			continue
		}
		if err := set.Set(ef.flag, v); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s=%q: %w", ef.env, v, err))
		}
	}
	return errors.Join(errs...)
}

// InitLogging sets up the logger according to the -v flag. The returned
// function flushes it.
func InitLogging() (flush func()) {
	if *Verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}
	return func() { _ = logger.Sync() }
}

func openStore() *store.Dir {
	return store.NewDir(*storePath)
}

// loadCollection loads the accounts from the store.
//
// A damaged snapshot is reported as a warning and what could be read is
// returned. Saving it afterwards drops the unreadable parts, so the slot is
// first copied to a backup slot.
func loadCollection() (*wallet.Collection, error) {
	c := wallet.NewCollection()
	d := openStore()
	schema, err := wallet.Load(d, *storeKey, c)
	switch {
	case errors.Is(err, wallet.ErrMalformedSnapshot):
		logger.Warn("damaged snapshot", zap.String("store", d.Path()), zap.String("key", *storeKey), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		backup, berr := store.Backup(d, *storeKey)
		if berr != nil {
			return nil, fmt.Errorf("damaged snapshot could not be backed up: %w", berr)
		}
		logger.Info("damaged snapshot backed up", zap.String("backup", backup))
		fmt.Fprintf(os.Stderr, "The damaged snapshot is kept as %q, see 'wallet slots'.\n", backup)
	case err != nil:
		return nil, fmt.Errorf("cannot load accounts from %q: %w", *storePath, err)
	}
	logger.Debug("accounts loaded", zap.Stringer("schema", schema), zap.Int("accounts", c.Len()))
	c.Subscribe(logEvent)
	return c, nil
}

func logEvent(e wallet.Event) {
	fields := []zap.Field{zap.Stringer("event", e.Kind)}
	if e.Account != nil {
		fields = append(fields, zap.Stringer("account", e.Account))
	}
	if e.Kind == wallet.Adjusted {
		fields = append(fields, zap.String("operation", string(e.Transaction.Operation)), zap.Stringer("amount", e.Transaction.Amount))
	}
	logger.Debug("collection changed", fields...)
}

// saveCollection writes the accounts back to the store, unless dryRun.
func saveCollection(c *wallet.Collection, dryRun bool) error {
	if dryRun {
		logger.Debug("dry run, accounts not saved")
		return nil
	}
	if err := wallet.Save(openStore(), *storeKey, c); err != nil {
		return fmt.Errorf("cannot save accounts to %q: %w", *storePath, err)
	}
	logger.Debug("accounts saved", zap.String("store", *storePath), zap.String("key", *storeKey), zap.Int("accounts", c.Len()))
	return nil
}

// findAccount resolves a reference, printing the error for the user.
func findAccount(c *wallet.Collection, ref string) (*wallet.Account, bool) {
	a, err := c.Find(ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, false
	}
	return a, true
}

// termWidth is the width of the terminal, from $COLUMNS, or 80.
func termWidth() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return 80
}

// printMarkdown prints markdown for the terminal, or as is if it cannot be
// rendered.
func printMarkdown(md string) {
	out, err := renderer.Terminal(md, termWidth())
	if err != nil {
		logger.Warn("cannot render markdown", zap.Error(err))
		out = md
	}
	fmt.Fprint(stdout, out)
}
