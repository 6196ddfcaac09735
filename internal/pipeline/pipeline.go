package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/zhouqcn/legalinfocollector/internal/providers"
	"github.com/zhouqcn/legalinfocollector/internal/ui"
	"github.com/zhouqcn/legalinfocollector/internal/uscode"
)

type Mode string

const (
	ModeTitles Mode = "titles"
	ModeLabels Mode = "labels"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeTitles:
		return ModeTitles, nil
	case ModeLabels:
		return ModeLabels, nil
	}
	return "", fmt.Errorf("unknown mode %q (want titles or labels)", s)
}

// Progress receives chapter expansion updates. *ui.ProgressHandle satisfies it.
type Progress interface {
	SetTotal(total int)
	Update(done, total, chapters int)
	MarkDone()
}

type Options struct {
	Mode     Mode
	IndexURL string

	Chapters bool
	// Workers bounds concurrent chapter page fetches. Values below 1 mean 1.
	Workers int

	Selection providers.Selection

	// StandardFallback substitutes "Title 1".."Title 54" when labels mode
	// finds nothing.
	StandardFallback bool

	Progress Progress
}

type Result struct {
	Titles []uscode.TitleRecord
	Labels []string
}

type Pipeline struct {
	scraper providers.Scraper
	log     providers.Logger
	stats   *ui.Stats
}

func New(s providers.Scraper, log providers.Logger, stats *ui.Stats) *Pipeline {
	if stats == nil {
		stats = &ui.Stats{}
	}
	return &Pipeline{scraper: s, log: log, stats: stats}
}

// Run performs one scrape. Fetch failures degrade to empty results; only a
// cancelled context or an unknown mode is reported as an error.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Result, error) {
	switch opts.Mode {
	case "", ModeTitles:
		return p.runTitles(ctx, opts)
	case ModeLabels:
		return p.runLabels(ctx, opts)
	}
	return Result{}, fmt.Errorf("unknown mode %q", opts.Mode)
}

func (p *Pipeline) runTitles(ctx context.Context, opts Options) (Result, error) {
	p.infof("Fetching title index: %s\n", opts.IndexURL)

	titles := p.scraper.GetTitles(ctx, opts.IndexURL)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if !opts.Selection.Empty() {
		before := len(titles)
		titles = providers.Filter(titles, opts.Selection)
		p.debugf("Selection kept %d of %d titles\n", len(titles), before)
	}

	p.stats.TotalTitles.Store(int64(len(titles)))

	if opts.Chapters && len(titles) > 0 {
		if err := p.expandChapters(ctx, titles, opts); err != nil {
			return Result{Titles: titles}, err
		}
	}

	return Result{Titles: titles}, nil
}

func (p *Pipeline) runLabels(ctx context.Context, opts Options) (Result, error) {
	p.infof("Fetching label page: %s\n", opts.IndexURL)

	labels := p.scraper.GetLabels(ctx, opts.IndexURL)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if len(labels) == 0 && opts.StandardFallback {
		p.infof("No labels found, using the standard list of %d titles\n", uscode.StandardTitleCount)
		labels = uscode.StandardLabels(uscode.StandardTitleCount)
	}

	p.stats.TotalTitles.Store(int64(len(labels)))

	return Result{Labels: labels}, nil
}

// expandChapters fills titles[i].Chapters in place. Each worker owns the
// slot it was handed, so the result does not depend on completion order.
func (p *Pipeline) expandChapters(ctx context.Context, titles []uscode.TitleRecord, opts Options) error {
	total := len(titles)
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	var (
		mu       sync.Mutex
		done     int
		chapters int
	)
	ph := opts.Progress
	if ph != nil {
		ph.SetTotal(total)
		ph.Update(0, total, 0)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			found := p.scraper.GetChapters(ctx, titles[i])
			if found == nil {
				found = []uscode.ChapterRecord{}
			}
			titles[i].Chapters = found
			p.debugf("TITLE %s: %d chapters\n", titles[i].TitleNumber, len(found))

			mu.Lock()
			done++
			chapters += len(found)
			if ph != nil {
				ph.Update(done, total, chapters)
			}
			mu.Unlock()
		}
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go worker()
	}

	var err error
feed:
	for i := range titles {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()
	if ph != nil {
		ph.MarkDone()
	}

	p.stats.TotalChapters.Store(int64(chapters))

	return err
}

func (p *Pipeline) infof(format string, args ...any) {
	if p.log != nil {
		p.log.Infof(format, args...)
	}
}

func (p *Pipeline) debugf(format string, args ...any) {
	if p.log != nil {
		p.log.Debugf(format, args...)
	}
}
