package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/readmegen/internal/scanner"
	"github.com/fyrsmithlabs/readmegen/internal/source"
)

// scanCmd summarizes a local directory without a server.
var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Summarize a local directory",
	Long: `Walk a local project directory and print a summary table. Runs entirely
in-process; no server is needed.

Examples:
  # Summarize the current directory
  rgen scan .

  # Summarize another project
  rgen scan ~/src/widgets`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := source.ValidateLocalPath(args[0]); err != nil {
		return err
	}

	res, err := scanner.New(zap.NewNop()).Scan(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	renderSummary(cmd, res.Summary)

	if len(res.Skipped) > 0 {
		fmt.Fprintf(os.Stderr, "\n[rgen] Skipped %d unreadable entries:\n", len(res.Skipped))
		for _, note := range res.Skipped {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", note.Path, note.Reason)
		}
	}

	return nil
}
