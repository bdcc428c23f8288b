package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/browser"
	"github.com/jonathan/jobscout/internal/discovery"
	"github.com/jonathan/jobscout/internal/fetchjd"
	"github.com/jonathan/jobscout/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the control API server",
	Long:  "Serve the JSON control API: upload a resume, start collection and analysis runs, poll status and download results.",
	RunE:  runServe,
}

var (
	serveAddr       string
	serveHeadless   bool
	serveCookieFile string
	serveMaxJobs    int
)

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "Listen address")
	serveCmd.Flags().BoolVar(&serveHeadless, "headless", true, "Run Chrome without a window (disables manual login)")
	serveCmd.Flags().StringVar(&serveCookieFile, "cookie-file", "linkedin_cookies.json", "Path for cached session cookies")
	serveCmd.Flags().IntVarP(&serveMaxJobs, "max-jobs", "n", 50, "Default maximum number of jobs per collection run")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadBaseConfig()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	client, err := newLLMClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	dopts := discovery.DefaultOptions()
	dopts.MaxJobs = serveMaxJobs
	if !cmd.Flags().Changed("max-jobs") && cfg.MaxJobs > 0 {
		dopts.MaxJobs = cfg.MaxJobs
	}

	srv := server.New(server.Config{
		Pipeline: p,
		LLM:      client,
		Sessions: func(ctx context.Context) (discovery.Session, func(), error) {
			sess, err := browser.NewSession(ctx, browserOptions(cfg, serveHeadless, serveCookieFile))
			if err != nil {
				return nil, nil, fmt.Errorf("failed to start browser: %w", err)
			}
			return sess, sess.Close, nil
		},
		Fetcher:       fetchjd.New(fetchjd.DefaultTimeout),
		SearchURL:     resolveSearchURL(cfg, ""),
		DiscoveryOpts: dopts,
		EnrichOpts:    enrichOptions(cfg),
	})

	return srv.ListenAndServe(serveAddr)
}
