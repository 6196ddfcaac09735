package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/zhouqcn/legalinfocollector/internal/cache"
	"github.com/zhouqcn/legalinfocollector/internal/config"
	"github.com/zhouqcn/legalinfocollector/internal/pipeline"
	"github.com/zhouqcn/legalinfocollector/internal/providers"
	"github.com/zhouqcn/legalinfocollector/internal/providers/generic"
	"github.com/zhouqcn/legalinfocollector/internal/report"
	"github.com/zhouqcn/legalinfocollector/internal/ui"
	"github.com/zhouqcn/legalinfocollector/internal/uscode"
	"github.com/zhouqcn/legalinfocollector/internal/util"

	"github.com/spf13/cobra"
)

var (
	// source
	flagURL    string
	flagOrigin string
	flagMarker string
	flagMode   string

	// selection
	flagTitle string
	flagRange string
	flagList  string
	flagName  string

	// output
	flagOutput           string
	flagFormat           string
	flagChapters         bool
	flagChapterWorkers   int
	flagSample           int
	flagStandardFallback bool
	flagDryRun           bool

	// transport
	flagUserAgent      string
	flagAcceptLanguage string
	flagReferer        string
	flagCookie         string
	flagCookieFile     string
	flagTimeout        int
	flagRetries        int
	flagInsecure       bool
	flagCloudflare     bool

	// cache
	flagCacheDir string
	flagCacheTTL int
)

func init() {
	scrapeCmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the title index (and optionally chapters) and write it to a file. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runScrape,
	}

	f := scrapeCmd.Flags()

	// source
	f.StringVar(&flagURL, "url", "", "title index page URL")
	f.StringVar(&flagOrigin, "origin", "", "site origin used to resolve relative links")
	f.StringVar(&flagMarker, "marker", "", "path fragment a title link must contain (default \"/text/\")")
	f.StringVar(&flagMode, "mode", "", "titles or labels")

	// selection
	f.StringVar(&flagTitle, "title", "", "keep a single title by label (e.g. 4 or APPENDIX)")
	f.StringVar(&flagRange, "range", "", "keep numeric titles in a range (e.g. 1-10)")
	f.StringVar(&flagList, "list", "", "keep specific titles (e.g. 1,4,26)")
	f.StringVar(&flagName, "name", "", "keep titles whose name matches (fuzzy)")

	// output
	f.StringVarP(&flagOutput, "output", "o", "", "output file (default lii_title.json)")
	f.StringVar(&flagFormat, "format", "", "json or yaml")
	f.BoolVar(&flagChapters, "chapters", false, "also fetch the chapter list of every title")
	f.IntVar(&flagChapterWorkers, "chapter-workers", 1, "parallel chapter page fetches")
	f.IntVar(&flagSample, "sample", 5, "number of titles shown in the summary")
	f.BoolVar(&flagStandardFallback, "standard-fallback", false, "labels mode: use Title 1..54 when nothing is found")
	f.BoolVar(&flagDryRun, "dry-run", false, "print the extracted titles, don't write a file")

	// transport
	f.StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	f.StringVar(&flagAcceptLanguage, "accept-language", "", "Accept-Language header")
	f.StringVar(&flagReferer, "referer", "", "Referer header")
	f.StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	f.StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	f.IntVar(&flagTimeout, "timeout", 15, "request timeout in seconds")
	f.IntVar(&flagRetries, "retries", 3, "retries for failed requests")
	f.BoolVar(&flagInsecure, "insecure", false, "skip TLS certificate verification")
	f.BoolVar(&flagCloudflare, "cloudflare", false, "use the Cloudflare bypass transport")

	// cache
	f.StringVar(&flagCacheDir, "cache-dir", "", "cache fetched pages in this directory")
	f.IntVar(&flagCacheTTL, "cache-ttl", 24, "cache lifetime in hours")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	override := config.Config{
		IndexURL:           flagURL,
		Origin:             flagOrigin,
		TitlePathMarker:    flagMarker,
		Mode:               flagMode,
		Output:             flagOutput,
		Format:             flagFormat,
		Chapters:           flagChapters,
		Debug:              flagDebug,
		StandardFallback:   flagStandardFallback,
		UserAgent:          flagUserAgent,
		AcceptLanguage:     flagAcceptLanguage,
		Referer:            flagReferer,
		Cookie:             flagCookie,
		CookieFile:         flagCookieFile,
		InsecureSkipVerify: flagInsecure,
		CloudflareBypass:   flagCloudflare,
		CacheDir:           flagCacheDir,
	}

	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Override:     override,
	})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("chapter-workers") {
		cfg.ChapterWorkers = flagChapterWorkers
	}
	if flags.Changed("sample") {
		cfg.SampleSize = flagSample
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = flagTimeout
	}
	if flags.Changed("retries") {
		cfg.Retries = flagRetries
	}
	if flags.Changed("cache-ttl") {
		cfg.CacheTTLHours = flagCacheTTL
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	mode, err := pipeline.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	selection := providers.ResolveSelection(providers.Selection{
		Title: flagTitle,
		Range: flagRange,
		List:  flagList,
		Name:  flagName,
	}, cfg.DefaultRange, cfg.DefaultList)
	if err := selection.Validate(); err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}
	if cfg.Debug {
		fmt.Println("Full config:")
		cfg.Print(os.Stdout)
		fmt.Println()
	}

	stats := &ui.Stats{}

	var fetcher providers.Fetcher
	httpFetcher, err := generic.NewHTTPFetcher(generic.FetchConfig{
		UserAgent:          cfg.UserAgent,
		AcceptLanguage:     cfg.AcceptLanguage,
		Referer:            cfg.Referer,
		Cookie:             cfg.Cookie,
		CookieFile:         cfg.CookieFile,
		Timeout:            cfg.Timeout(),
		Retries:            cfg.Retries,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		CloudflareBypass:   cfg.CloudflareBypass,
	}, logSvc, stats)
	if err != nil {
		return err
	}
	fetcher = httpFetcher

	if cfg.CacheDir != "" {
		pages, err := cache.Open(cfg.CacheDir, cfg.CacheTTL())
		if err != nil {
			return err
		}
		defer func() {
			if err := pages.Close(); err != nil {
				logSvc.Errorf("closing page cache: %v\n", err)
			}
		}()
		fetcher = cache.NewFetcher(httpFetcher, pages, logSvc, stats)
	}

	scr := generic.NewScraper(fetcher, uscode.Options{
		Origin:      cfg.Origin,
		PathMarker:  cfg.TitlePathMarker,
		FallbackURL: cfg.IndexURL,
	}, logSvc)

	ctx := context.Background()
	if !flagDryRun {
		util.SetupInterruptHandler(cfg.Output)
	}

	opts := pipeline.Options{
		Mode:             mode,
		IndexURL:         cfg.IndexURL,
		Chapters:         cfg.Chapters,
		Workers:          cfg.ChapterWorkers,
		Selection:        selection,
		StandardFallback: cfg.StandardFallback,
	}

	var (
		pm     *ui.MPBProgressManager
		handle *ui.ProgressHandle
	)
	if mode == pipeline.ModeTitles && cfg.Chapters {
		pm = ui.NewProgressManager(os.Stderr)
		handle = pm.Register("Chapters")
		opts.Progress = handle
	}

	start := time.Now()
	res, err := pipeline.New(scr, logSvc, stats).Run(ctx, opts)
	if handle != nil {
		handle.MarkDone()
		pm.Close()
	}
	if err != nil {
		return err
	}

	if mode == pipeline.ModeLabels {
		if flagDryRun {
			report.PrintLabelSummary(os.Stdout, res.Labels, len(res.Labels))
			return nil
		}
		if err := report.WriteLabels(cfg.Output, res.Labels, format); err != nil {
			return err
		}
		fmt.Printf("Results saved to: %s\n", cfg.Output)
		report.PrintLabelSummary(os.Stdout, res.Labels, cfg.SampleSize)
	} else {
		if flagDryRun {
			fmt.Printf("Dry-run: %s selected.\n\n", util.Plural(len(res.Titles), "title"))
			report.PrintTitleTable(os.Stdout, res.Titles)
			return nil
		}
		if err := report.WriteTitles(cfg.Output, res.Titles, format); err != nil {
			return err
		}
		fmt.Printf("Results saved to: %s\n", cfg.Output)
		report.PrintTitleSummary(os.Stdout, res.Titles, cfg.SampleSize)
	}

	fmt.Println()
	fmt.Println("Scrape Summary:")
	fmt.Printf("Pages:    %d fetched, %d failed, %d from cache\n",
		stats.PagesFetched.Load(), stats.FailedFetches.Load(), stats.CacheHits.Load())
	fmt.Printf("Data:     %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:     %s\n", time.Since(start).Round(time.Millisecond))

	return nil
}
