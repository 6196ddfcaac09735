package providers

import (
	"context"

	"github.com/zhouqcn/legalinfocollector/internal/uscode"
)

// Fetcher returns the markup behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Scraper methods never fail: a page that cannot be fetched or parsed
// produces an empty result.
type Scraper interface {
	GetTitles(ctx context.Context, indexURL string) []uscode.TitleRecord
	GetChapters(ctx context.Context, title uscode.TitleRecord) []uscode.ChapterRecord
	GetLabels(ctx context.Context, pageURL string) []string
}

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}
