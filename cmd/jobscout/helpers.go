package main

import (
	"context"
	"fmt"

	"github.com/jonathan/jobscout/internal/browser"
	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/enrichment"
	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/pipeline"
	"github.com/jonathan/jobscout/internal/searchurl"
	"github.com/jonathan/jobscout/internal/store"
)

// loadBaseConfig resolves the effective configuration: defaults, then the
// --config file, then environment variables for secrets, then the
// --data-dir flag.
func loadBaseConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		fileCfg, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	cfg.FillFromEnv()

	if dataDir != "" && dataDir != "." {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newPipeline(cfg config.Config) (*pipeline.Pipeline, error) {
	st, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	return pipeline.New(st), nil
}

func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required; set GEMINI_API_KEY or 'api_key' in the config file")
	}
	return llm.NewGeminiClient(ctx, cfg.APIKey)
}

func browserOptions(cfg config.Config, headless bool, cookieFile string) browser.Options {
	opts := browser.DefaultOptions()
	opts.Headless = headless
	opts.CookieFile = cfg.CookieFile
	if cookieFile != "" {
		opts.CookieFile = cookieFile
	}
	opts.Credentials = browser.Credentials{
		Email:    cfg.LinkedInEmail,
		Password: cfg.LinkedInPassword,
	}
	return opts
}

func enrichOptions(cfg config.Config) enrichment.Options {
	opts := enrichment.DefaultOptions()
	if cfg.DelayMinSeconds > 0 {
		opts.DelayMin = cfg.DelayMin()
	}
	if cfg.DelayMaxSeconds > 0 {
		opts.DelayMax = cfg.DelayMax()
	}
	return opts
}

// resolveSearchURL picks the search URL: an explicit flag wins, then a full
// URL from the config, then a URL built from the config's search filters.
func resolveSearchURL(cfg config.Config, flagURL string) string {
	if flagURL != "" {
		return flagURL
	}
	if cfg.SearchURL != "" {
		return cfg.SearchURL
	}

	params := searchurl.DefaultParams()
	if cfg.Keywords != "" {
		params.Keywords = cfg.Keywords
	}
	if cfg.Location != "" {
		params.Location = cfg.Location
	}
	if cfg.GeoID != "" {
		params.GeoID = cfg.GeoID
	}
	return params.Build()
}
