// Package cli implements the turnpoint command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/prosodylabs/turnpoint/internal/dotenv"
	"github.com/prosodylabs/turnpoint/pkg/endpoint"
)

var (
	flagConfig  string
	flagEnvFile string
	flagVerbose bool
)

// NewRootCmd builds the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "turnpoint",
		Short:         "Semantic endpointing over streaming speech-to-text segments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config (default: environment variables)")
	cmd.PersistentFlags().StringVar(&flagEnvFile, "env", "", "path to dotenv file (default: .env)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	cmd.AddCommand(newReplayCmd())
	cmd.AddCommand(newLiveCmd())

	return cmd
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration: dotenv file first, then YAML file or
// environment variables.
func loadConfig() (endpoint.Config, error) {
	var err error
	if flagEnvFile != "" {
		err = dotenv.Load(flagEnvFile)
	} else {
		err = dotenv.Load()
	}
	if err != nil {
		return endpoint.Config{}, err
	}

	if flagConfig != "" {
		return endpoint.LoadFile(flagConfig)
	}
	return endpoint.LoadFromEnv()
}

// newLogger builds the CLI logger writing to stderr, keeping stdout for
// decision output.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
