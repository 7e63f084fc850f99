package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nareshchaudhary/career-agent/internal/config"
	"github.com/nareshchaudhary/career-agent/internal/engine"
	"github.com/nareshchaudhary/career-agent/internal/prompts"
	"github.com/nareshchaudhary/career-agent/internal/server"
)

var serveListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for querying, resume uploads, and the resume builder.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListenAddr, "listen", "", "Listen address (overrides LISTEN_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serveListenAddr != "" {
		cfg.ListenAddr = serveListenAddr
	}

	if err := prompts.Verify(); err != nil {
		return fmt.Errorf("invalid prompt packaging: %w", err)
	}

	eng, err := engine.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	return server.New(cfg, eng).Start()
}
