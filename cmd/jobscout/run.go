package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/browser"
	"github.com/jonathan/jobscout/internal/discovery"
	"github.com/jonathan/jobscout/internal/fetchjd"
	"github.com/jonathan/jobscout/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: collect, analyze, report",
	Long:  "Collect jobs, then score them against the resume and write the match report. The resume is parsed first when --resume is given, otherwise a previously stored resume is used.",
	RunE:  runFullPipeline,
}

var (
	runSearchURL  string
	runMaxJobs    int
	runHeadless   bool
	runCookieFile string
	runResumeFile string
)

func init() {
	runCmd.Flags().StringVarP(&runSearchURL, "search-url", "s", "", "LinkedIn search URL (default: built-in AI Engineer search)")
	runCmd.Flags().IntVarP(&runMaxJobs, "max-jobs", "n", 50, "Maximum number of jobs to collect")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "Run Chrome without a window (disables manual login)")
	runCmd.Flags().StringVar(&runCookieFile, "cookie-file", "", "Path for cached session cookies")
	runCmd.Flags().StringVarP(&runResumeFile, "resume", "r", "", "Resume PDF to parse before analyzing")

	rootCmd.AddCommand(runCmd)
}

func runFullPipeline(cmd *cobra.Command, args []string) error {
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

	if runResumeFile != "" {
		if _, err := p.ProcessResume(ctx, client, runResumeFile); err != nil {
			return err
		}
		fmt.Println("Resume processed")
	} else if !p.Store().Exists(store.FileResume) {
		return fmt.Errorf("no stored resume; run parse-resume first or pass --resume")
	}

	sess, err := browser.NewSession(ctx, browserOptions(cfg, runHeadless, runCookieFile))
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer sess.Close()

	dopts := discovery.DefaultOptions()
	dopts.MaxJobs = runMaxJobs
	if !cmd.Flags().Changed("max-jobs") && cfg.MaxJobs > 0 {
		dopts.MaxJobs = cfg.MaxJobs
	}

	searchURL := resolveSearchURL(cfg, runSearchURL)
	if _, err := p.CollectJobs(ctx, sess, searchURL, dopts, fetchjd.New(fetchjd.DefaultTimeout), enrichOptions(cfg)); err != nil {
		return err
	}

	if _, err := p.AnalyzeMatches(ctx, client); err != nil {
		return err
	}

	fmt.Printf("Report written to %s\n", p.Store().Path(store.FileReport))
	return nil
}
