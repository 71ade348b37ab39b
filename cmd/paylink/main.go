package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	paylink "github.com/alnah/go-paylink"
	"github.com/alnah/go-paylink/internal/cli"
	"github.com/alnah/go-paylink/internal/config"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitSetup      = 3
	ExitValidation = 4
	ExitAPI        = 5
	ExitInterrupt  = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// Context with signal cancellation.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := cli.DefaultEnv()

	rootCmd := &cobra.Command{
		Use:     "paylink",
		Short:   "Create invoices and inspect payments",
		Version: fmt.Sprintf("%s (commit: %s, client %s)", version, commit, paylink.Version),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.InvoiceCmd(env))
	rootCmd.AddCommand(cli.TransactionsCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to process exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Interrupt, including a request aborted by it.
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	if errors.Is(err, cli.ErrUnsupportedFormat) {
		return ExitUsage
	}

	// Setup errors: nothing can succeed until credentials are fixed.
	if errors.Is(err, cli.ErrAPIKeyMissing) || errors.Is(err, paylink.ErrAuthentication) {
		return ExitSetup
	}

	// Validation errors: rejected locally before any request.
	if errors.Is(err, paylink.ErrValidation) || errors.Is(err, cli.ErrInvalidAmount) ||
		errors.Is(err, config.ErrInvalidKey) || errors.Is(err, config.ErrUnknownKey) ||
		errors.Is(err, config.ErrInvalidValue) {
		return ExitValidation
	}

	// API errors: the request was sent and failed remotely or in transit.
	if errors.Is(err, paylink.ErrRateLimit) || errors.Is(err, paylink.ErrAPI) ||
		errors.Is(err, cli.ErrRequestRejected) {
		return ExitAPI
	}

	// Matched last: API messages are free text and may contain the same words.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",          // Missing required flag
	"unknown flag",           // Flag doesn't exist
	"unknown shorthand",      // Short flag doesn't exist
	"unknown command",        // Subcommand doesn't exist
	"flag needs an argument", // Flag provided without value
	"invalid argument",       // Invalid flag value type
	"accepts ",               // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",      // Too few arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
