package generic

import (
	"context"

	"github.com/zhouqcn/legalinfocollector/internal/providers"
	"github.com/zhouqcn/legalinfocollector/internal/uscode"
)

type Scraper struct {
	fetcher providers.Fetcher
	opts    uscode.Options
	log     providers.Logger
}

var _ providers.Scraper = (*Scraper)(nil)

func NewScraper(f providers.Fetcher, opts uscode.Options, log providers.Logger) *Scraper {
	if log == nil {
		log = noopLogger{}
	}
	return &Scraper{fetcher: f, opts: opts, log: log}
}

// GetTitles extracts the title index. When opts.FallbackURL is unset, titles
// found by the text scan point back at indexURL.
func (s *Scraper) GetTitles(ctx context.Context, indexURL string) []uscode.TitleRecord {
	markup, err := s.fetcher.Fetch(ctx, indexURL)
	if err != nil {
		s.log.Errorf("Scraping error: %v\n", err)
		return []uscode.TitleRecord{}
	}
	s.log.Debugf("Content length: %d characters\n", len(markup))

	opts := s.opts
	if opts.FallbackURL == "" {
		opts.FallbackURL = indexURL
	}

	titles := uscode.ExtractTitles(markup, opts)
	for _, t := range titles {
		s.log.Debugf("Extracted: TITLE %s - %s\n", t.TitleNumber, t.TitleName)
	}

	return titles
}

func (s *Scraper) GetChapters(ctx context.Context, title uscode.TitleRecord) []uscode.ChapterRecord {
	if title.URL == "" {
		return []uscode.ChapterRecord{}
	}

	markup, err := s.fetcher.Fetch(ctx, title.URL)
	if err != nil {
		s.log.Errorf("Chapters for TITLE %s: %v\n", title.TitleNumber, err)
		return []uscode.ChapterRecord{}
	}

	chapters := uscode.ExtractChapters(markup, s.opts)
	if len(chapters) == 0 {
		s.log.Debugf("No chapter list found on %s\n", title.URL)
	}

	return chapters
}

func (s *Scraper) GetLabels(ctx context.Context, pageURL string) []string {
	markup, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		s.log.Errorf("Scraping error: %v\n", err)
		return []string{}
	}

	labels := uscode.ExtractLabels(markup)
	for _, l := range labels {
		s.log.Debugf("Found label: %s\n", l)
	}

	return labels
}
