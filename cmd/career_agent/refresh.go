package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nareshchaudhary/career-agent/internal/config"
	"github.com/nareshchaudhary/career-agent/internal/kb"
)

var (
	refreshNotes string
	refreshQuick bool
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Check knowledge base source links and write a refresh log",
	Long: `Probe the upstream sources the knowledge base is curated from and write
a source-check table into the corpus directory for manual follow-up.`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().StringVar(&refreshNotes, "notes", "", "Optional notes to include in the refresh log")
	refreshCmd.Flags().BoolVar(&refreshQuick, "quick", false, "Check only the first 5 sources")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	urls := kb.SourceURLs
	if refreshQuick && len(urls) > 5 {
		urls = urls[:5]
	}

	results := kb.CheckSources(context.Background(), nil, urls)
	if err := kb.WriteRefreshLog(cfg.KBDir, results, refreshNotes); err != nil {
		return fmt.Errorf("failed to write refresh log: %w", err)
	}

	reachable := 0
	for _, r := range results {
		if r.OK {
			reachable++
		}
	}
	fmt.Printf("Refresh log written to: %s\n", cfg.KBDir+"/"+kb.RefreshLogName)
	fmt.Printf("Sources reachable: %d/%d\n", reachable, len(results))
	return nil
}
