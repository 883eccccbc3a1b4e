package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jonathan/resume-radar/internal/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent scans",
	Long:  "List recent scans recorded in the local history database, newest first.",
	RunE:  runHistory,
}

var (
	historyConfigPath string
	historyLimit      int
)

func init() {
	historyCmd.Flags().StringVarP(&historyConfigPath, "config", "c", "", "Path to JSON config file")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of scans to list")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(historyConfigPath)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No scans recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSCORE\tRESUME\tJD CHARS\tSOURCE")
	for _, e := range entries {
		score := "n/a"
		if e.ATSScore != nil {
			score = fmt.Sprintf("%.1f", *e.ATSScore)
		}
		source := e.SourceURL
		if source == "" {
			source = "(pasted)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), score, e.ResumeFilename, e.JDChars, source)
	}
	return w.Flush()
}
