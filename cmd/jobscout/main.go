// Package main provides the jobscout CLI: LinkedIn job collection, resume
// parsing and model-based match analysis.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "LinkedIn job search and match analysis",
	Long:  "Jobscout collects LinkedIn job postings, enriches them with full descriptions, scores each one against your resume with Gemini and produces a ranked match report.",
}

var (
	dataDir    string
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "Directory for stage output files")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed summaries of each stage")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
