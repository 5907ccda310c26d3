package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"go.uber.org/zap"
)

// ExtensionPrefix is the prefix of the external binaries run as subcommands.
const ExtensionPrefix = "wallet-"

// RunExtension attempts to find and execute an external wallet-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		logger.Debug("extension not found", zap.String("command", externalCmdName), zap.Error(err))
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	// Global flags are passed as environment variables.
	cmd.Env = append(os.Environ(),
		EnvStore+"="+*storePath,
		EnvKey+"="+*storeKey,
		EnvCurrency+"="+*currency,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)
	logger.Debug("running extension", zap.String("path", lp), zap.Strings("args", args))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
