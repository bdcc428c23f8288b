package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/browser"
	"github.com/jonathan/jobscout/internal/discovery"
	"github.com/jonathan/jobscout/internal/fetchjd"
	"github.com/jonathan/jobscout/internal/observability"
	"github.com/jonathan/jobscout/internal/store"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect job postings from a LinkedIn search",
	Long:  "Open an authenticated browser session, gather job postings from the search results and enrich each one with its full description.",
	RunE:  runCollect,
}

var (
	collectSearchURL  string
	collectMaxJobs    int
	collectHeadless   bool
	collectCookieFile string
)

func init() {
	collectCmd.Flags().StringVarP(&collectSearchURL, "search-url", "s", "", "LinkedIn search URL (default: built-in AI Engineer search)")
	collectCmd.Flags().IntVarP(&collectMaxJobs, "max-jobs", "n", 50, "Maximum number of jobs to collect")
	collectCmd.Flags().BoolVar(&collectHeadless, "headless", false, "Run Chrome without a window (disables manual login)")
	collectCmd.Flags().StringVar(&collectCookieFile, "cookie-file", "", "Path for cached session cookies")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadBaseConfig()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sess, err := browser.NewSession(ctx, browserOptions(cfg, collectHeadless, collectCookieFile))
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer sess.Close()

	dopts := discovery.DefaultOptions()
	dopts.MaxJobs = collectMaxJobs
	if !cmd.Flags().Changed("max-jobs") && cfg.MaxJobs > 0 {
		dopts.MaxJobs = cfg.MaxJobs
	}

	searchURL := resolveSearchURL(cfg, collectSearchURL)
	enriched, err := p.CollectJobs(ctx, sess, searchURL, dopts, fetchjd.New(fetchjd.DefaultTimeout), enrichOptions(cfg))
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(os.Stdout).PrintCollectedJobs(enriched)
	}

	withDescriptions := 0
	for _, job := range enriched {
		if job.HasDescription() {
			withDescriptions++
		}
	}

	fmt.Printf("Saved %d jobs to %s\n", len(enriched), p.Store().Path(store.FileEnriched))
	fmt.Printf("%d of %d have full descriptions\n", withDescriptions, len(enriched))
	return nil
}
