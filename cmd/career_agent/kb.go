package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nareshchaudhary/career-agent/internal/config"
	"github.com/nareshchaudhary/career-agent/internal/kb"
)

var kbQuery string

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Inspect the loaded knowledge base",
	Long: `Load the knowledge base directory and print chunk statistics. Pass
--query to preview which chunks retrieval would select for a question.`,
	RunE: runKB,
}

func init() {
	kbCmd.Flags().StringVar(&kbQuery, "query", "", "Preview retrieval for this query")
	rootCmd.AddCommand(kbCmd)
}

func runKB(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	chunks, err := kb.Load(cfg.KBDir)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	fmt.Printf("Knowledge base: %s\n", cfg.KBDir)
	fmt.Printf("Chunks: %d (%d chars total)\n", len(chunks), total)

	if kbQuery == "" {
		return nil
	}

	selected := kb.Select(kbQuery, chunks, 4)
	fmt.Printf("\nSelected %d chunk(s) for %q:\n", len(selected), kbQuery)
	for i, chunk := range selected {
		preview := chunk
		if len(preview) > 160 {
			preview = strings.TrimSpace(preview[:160]) + "..."
		}
		fmt.Printf("%d. %s\n", i+1, preview)
	}
	return nil
}
