// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/danielhkuo/chain-vote/cliparse"
)

const programName = "chain-vote"

func slogPrintf(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...),
		"component", programName,
	)
}

// commonRun installs the JSON logger and sizes GOMAXPROCS to the container
func commonRun(cfg cliparse.Config) *slog.Logger {
	logLevel := slog.LevelInfo
	addSource := false
	if cfg.Debug {
		logLevel = slog.LevelDebug
		addSource = true
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: addSource,
			Level:     logLevel,
		}),
	)
	slog.SetDefault(logger)

	// Toss the undo func; the limit holds for the life of the process
	if _, err := maxprocs.Set(maxprocs.Logger(slogPrintf)); err != nil {
		slog.Error("failed to set GOMAXPROCS", "error", err)
		os.Exit(1)
	}
	return logger
}

// configCommand wraps run so that the command's arguments go through
// cliparse, letting flags and env variables behave the same everywhere.
func configCommand(use, short string, run func(cmd *cobra.Command, cfg cliparse.Config) error) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliparse.ParseFlags(args)
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}
}

func main() {
	rootCmd := configCommand(programName, "Vote relay in front of an Ethereum contract or SQL ballot store", serveRun)

	// Subcommands
	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(provisionCommand())
	rootCmd.AddCommand(resultsCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
