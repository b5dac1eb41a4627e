// Package main provides the jobradar CLI: the entry-level job market pipeline
// and its HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobradar",
	Short: "Entry-level tech job aggregation pipeline",
	Long:  "jobradar aggregates entry-level technology job postings from the Adzuna search API and the Careers24 job board into a deduplicated, freshness-filtered catalog.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
