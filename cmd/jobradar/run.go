package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ntokozo078/entry-job-market-pipeline/internal/config"
	"github.com/ntokozo078/entry-job-market-pipeline/internal/db"
	"github.com/ntokozo078/entry-job-market-pipeline/internal/pipeline"
	"github.com/ntokozo078/entry-job-market-pipeline/internal/source"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ingestion pipeline once",
	Long:  "Fetches listings from every configured source, classifies and deduplicates them, and upserts the batch into the catalog in a single transaction.",
	RunE:  runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// newPipeline wires the source adapters and the upsert engine from config.
func newPipeline(cfg *config.Config, database *db.DB) *pipeline.Pipeline {
	adzuna := source.NewAdzunaAdapter(source.AdzunaConfig{
		AppID:  cfg.AdzunaAppID,
		AppKey: cfg.AdzunaAppKey,
	})
	careers24 := source.NewCareers24Adapter(source.Careers24Config{
		UseBrowser: cfg.UseBrowser,
	})
	return pipeline.New(database, adzuna, careers24)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	newCount, err := newPipeline(cfg, database).RunETL(ctx)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pipeline finished. New records: %d\n", newCount)
	return nil
}
