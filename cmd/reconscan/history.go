package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hakim/reconscan/internal/models"
	"github.com/hakim/reconscan/internal/option"
	"github.com/hakim/reconscan/internal/storage"
)

const historySeparator = "────────────────────────────────────────────────────────────────────────"

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show scan history for a target",
	Long: `Display a formatted table of past runs for a target URI or domain.

Runs are listed newest-first. Each row shows the run ID (truncated), start time,
mode, run state, scan outcome and the number of findings.

Without --target the recorded targets are listed instead.
Use --id to show every detail of a single run, including what it found.
Use --limit to cap the number of rows shown (default: 10).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("target")
		id, _ := cmd.Flags().GetString("id")
		limit, _ := cmd.Flags().GetInt("limit")
		w := cmd.OutOrStdout()

		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if id != "" {
			run, err := store.GetRun(id)
			if err != nil {
				return err
			}
			printRun(w, run)
			return nil
		}

		if target == "" {
			targets, err := store.Targets()
			if err != nil {
				return fmt.Errorf("listing targets: %w", err)
			}
			if len(targets) == 0 {
				fmt.Fprintln(w, "No scan history recorded yet")
				return nil
			}
			fmt.Fprintln(w, "Recorded targets:")
			for _, t := range targets {
				fmt.Fprintf(w, "  %s\n", t)
			}
			return nil
		}

		target = historyTarget(target)
		runs, err := store.ListRuns(target, limit)
		if err != nil {
			return fmt.Errorf("listing runs for %s: %w", target, err)
		}
		if len(runs) == 0 {
			fmt.Fprintf(w, "No scan history found for %s\n", target)
			return nil
		}

		fmt.Fprintf(w, "\nScan History for %s\n", target)
		fmt.Fprintln(w, historySeparator)
		fmt.Fprintf(w, "  %-3s  %-12s  %-16s  %-6s  %-9s  %-8s  %s\n", "#", "Run ID", "Started", "Mode", "State", "Outcome", "Findings")
		fmt.Fprintln(w, historySeparator)

		for i, run := range runs {
			fmt.Fprintf(w, "  %-3d  %-12s  %-16s  %-6s  %-9s  %-8s  %d\n",
				i+1,
				shortRunID(run.ID),
				run.StartedAt.Local().Format("2006-01-02 15:04"),
				run.Mode,
				run.Status,
				formatOutcome(run),
				run.Findings)
		}

		fmt.Fprintln(w, historySeparator)
		fmt.Fprintf(w, "Total: %d run(s)\n\n", len(runs))

		return nil
	},
}

// historyTarget maps a --target value onto the key runs are stored under.
// URI scans record the normalised base URI.
func historyTarget(target string) string {
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return option.NormalizeURI(target)
	}
	return target
}

func printRun(w io.Writer, run *models.ScanRecord) {
	fmt.Fprintf(w, "\nRun %s\n", run.ID)
	fmt.Fprintln(w, historySeparator)
	fmt.Fprintf(w, "  Target:    %s\n", run.Target)
	fmt.Fprintf(w, "  Mode:      %s\n", run.Mode)
	if run.Method != "" {
		fmt.Fprintf(w, "  Method:    %s\n", run.Method)
	}
	if run.Wordlist != "" {
		fmt.Fprintf(w, "  Wordlist:  %s\n", run.Wordlist)
	}
	fmt.Fprintf(w, "  Started:   %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if run.CompletedAt != nil {
		fmt.Fprintf(w, "  Completed: %s\n", run.CompletedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(w, "  State:     %s\n", run.Status)
	fmt.Fprintf(w, "  Outcome:   %s\n", formatOutcome(run))
	if run.ScanTime > 0 {
		fmt.Fprintf(w, "  Scan Time: %s\n", run.ScanTime)
	}
	if run.SavePath != "" {
		fmt.Fprintf(w, "  Report:    %s\n", run.SavePath)
	}
	if run.Error != "" {
		fmt.Fprintf(w, "  Error:     %s\n", run.Error)
	}
	fmt.Fprintf(w, "  Findings:  %d\n", run.Findings)
	for _, item := range run.Found {
		fmt.Fprintf(w, "    %s\n", item)
	}
	fmt.Fprintln(w, historySeparator)
}

// shortRunID returns the first 8 characters of a UUID followed by "..." for
// compact table display.
func shortRunID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

func formatOutcome(run *models.ScanRecord) string {
	if run.Outcome == "" {
		return "-"
	}
	return run.Outcome
}

// openHistoryStore opens the history database named by the config, falling
// back to the per-user default location.
func openHistoryStore() (*storage.Store, error) {
	path := cfg.History.DBPath
	if path == "" {
		var err error
		if path, err = storage.DefaultPath(); err != nil {
			return nil, fmt.Errorf("locating history database: %w", err)
		}
	}
	return storage.Open(path)
}

func init() {
	historyCmd.Flags().String("target", "", "Target URI or domain as given to the scan")
	historyCmd.Flags().String("id", "", "Show the details of one run")
	historyCmd.Flags().Int("limit", 10, "Maximum number of runs to display")
	rootCmd.AddCommand(historyCmd)
}
