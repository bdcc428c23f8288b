package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/observability"
	"github.com/jonathan/jobscout/internal/report"
	"github.com/jonathan/jobscout/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score collected jobs against the stored resume",
	Long:  "Score every enriched job against the stored resume with the model, rank the results and write the match report. Requires collect and parse-resume to have run.",
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadBaseConfig()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	results, err := p.AnalyzeMatches(ctx, client)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(os.Stdout).PrintRankedMatches(results)
	}

	stats := report.Summarize(results)
	fmt.Printf("Average match score: %.1f\n", stats.AverageScore)
	fmt.Printf("High matches (80+): %d\n", stats.HighMatches)
	fmt.Printf("Report written to %s\n", p.Store().Path(store.FileReport))
	return nil
}
