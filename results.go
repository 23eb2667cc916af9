// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/chain-vote/cliparse"
)

func resultsCommand() *cobra.Command {
	return configCommand("results", "Print every candidate's tally", resultsRun)
}

func resultsRun(cmd *cobra.Command, cfg cliparse.Config) error {
	logger := commonRun(cfg)

	contract, _, closeLedger, err := openLedger(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer closeLedger()

	// Unregistered metrics; nothing scrapes a one-shot command
	results, err := newService(contract, cfg, logger, nil).GetResults(cmd.Context(), nil)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
	var total uint64
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t\n", r.Candidate, humanize.Comma(int64(r.Votes)))
		total += r.Votes
	}
	fmt.Fprintf(tw, "total\t%s\t\n", humanize.Comma(int64(total)))
	return tw.Flush()
}
