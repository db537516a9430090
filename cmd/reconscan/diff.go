package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hakim/reconscan/internal/diff"
	"github.com/hakim/reconscan/internal/report"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the two most recent completed runs for a target",
	Long: `Load the two newest completed runs of a target from the scan history and
show what was found in the newer run but not the older one, and the reverse.

URI runs are compared on their 2xx URIs and domain runs on their resolved
host names. Use --output to also write the comparison as a markdown file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("target")
		output, _ := cmd.Flags().GetString("output")
		if target == "" {
			return errors.New("--target is required")
		}

		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer store.Close()

		target = historyTarget(target)
		runs, err := store.ListRuns(target, 0)
		if err != nil {
			return fmt.Errorf("listing runs for %s: %w", target, err)
		}

		current, previous, err := diff.Latest(runs)
		if err != nil {
			return fmt.Errorf("%s: %w", target, err)
		}
		result := diff.Compare(current, previous)

		newConsole(cmd.OutOrStdout(), cfg.Output.NoColor).Diff(result)

		if output != "" {
			if err := report.WriteDiffReport(output, result, time.Now()); err != nil {
				return err
			}
			log.WithField("path", output).Info("diff report saved")
		}
		return nil
	},
}

func init() {
	diffCmd.Flags().String("target", "", "Target URI or domain as given to the scan")
	diffCmd.Flags().StringP("output", "o", "", "Write the comparison as markdown to this file")
	rootCmd.AddCommand(diffCmd)
}
