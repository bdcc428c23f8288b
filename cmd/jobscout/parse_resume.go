package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/observability"
	"github.com/jonathan/jobscout/internal/store"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Extract and structure a resume PDF",
	Long:  "Extract the text from a resume PDF, derive a structured profile with the model and store both for the matching stage.",
	RunE:  runParseResume,
}

var resumeFile string

func init() {
	parseResumeCmd.Flags().StringVarP(&resumeFile, "file", "f", "", "Path to the resume PDF (required)")
	parseResumeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, args []string) error {
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

	data, err := p.ProcessResume(ctx, client, resumeFile)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(os.Stdout).PrintResumeProfile(data.Structured)
	}

	fmt.Printf("Extracted %d characters of resume text\n", len(data.Text))
	if data.Structured != nil && data.Structured.PersonalInfo.Name != "" {
		fmt.Printf("Candidate: %s\n", data.Structured.PersonalInfo.Name)
	}
	fmt.Printf("Saved resume data to %s\n", p.Store().Path(store.FileResume))
	return nil
}
