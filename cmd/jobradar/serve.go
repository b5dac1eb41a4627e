package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ntokozo078/entry-job-market-pipeline/internal/config"
	"github.com/ntokozo078/entry-job-market-pipeline/internal/db"
	"github.com/ntokozo078/entry-job-market-pipeline/internal/scheduler"
	"github.com/ntokozo078/entry-job-market-pipeline/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog API server",
	Long:  "Serves the job catalog over HTTP. With SCRAPE_INTERVAL_HOURS set, also runs the ingestion pipeline on a schedule.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	p := newPipeline(cfg, database)

	if cfg.ScrapeIntervalHours > 0 {
		sched := scheduler.New(p, cfg.ScrapeIntervalHours)
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	}

	return server.New(cfg.Port, database, p).Start()
}
