package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nareshchaudhary/career-agent/internal/config"
	"github.com/nareshchaudhary/career-agent/internal/engine"
	"github.com/nareshchaudhary/career-agent/internal/resume"
)

var (
	askResumePath    string
	askResumeBuilder bool
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask a single career question from the command line",
	Long: `Run one query through the full answer pipeline and print the markdown
answer with its sources. Pass --resume to personalize against a resume file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askResumePath, "resume", "", "Path to a TXT or MD resume for personalized answers")
	askCmd.Flags().BoolVar(&askResumeBuilder, "resume-builder", false, "Generate a resume draft instead of a chat answer (requires --resume)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	eng, err := engine.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	sess := eng.NewSession()

	useProfile := false
	if askResumePath != "" {
		content, err := os.ReadFile(askResumePath)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		text, err := resume.ExtractText(filepath.Base(askResumePath), content)
		if err != nil {
			return err
		}
		result := sess.SetResume(text, filepath.Base(askResumePath))
		if !result.Uploaded {
			return fmt.Errorf("resume rejected: %s", result.Message)
		}
		useProfile = true
	}
	if askResumeBuilder && !useProfile {
		return fmt.Errorf("--resume-builder requires --resume")
	}

	query := strings.Join(args, " ")
	resp := sess.Respond(ctx, query, useProfile, askResumeBuilder)

	fmt.Println(resp.Answer)
	if resp.ResumeBuild != nil {
		fmt.Println()
		fmt.Println(resp.ResumeBuild.ContentMarkdown)
	}
	if len(resp.Sources) > 0 {
		fmt.Printf("\nSources: %s\n", strings.Join(resp.Sources, ", "))
	}
	return nil
}
