package generic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/zhouqcn/legalinfocollector/internal/providers"
	"github.com/zhouqcn/legalinfocollector/internal/ui"
	"github.com/zhouqcn/legalinfocollector/internal/util"
)

// FetchConfig is the whole transport configuration of a fetcher. Nothing is
// read from process-wide defaults.
type FetchConfig struct {
	UserAgent      string
	AcceptLanguage string
	Referer        string
	Cookie         string
	CookieFile     string

	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration

	InsecureSkipVerify bool
	CloudflareBypass   bool
}

func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		UserAgent:      util.DefaultUserAgent,
		AcceptLanguage: "en-US,en;q=0.9",
		Referer:        "https://www.law.cornell.edu/",
		Timeout:        15 * time.Second,
		Retries:        3,
		RetryWait:      500 * time.Millisecond,
	}
}

type HTTPFetcher struct {
	client *resty.Client
	log    providers.Logger
	stats  *ui.Stats
}

func NewHTTPFetcher(cfg FetchConfig, log providers.Logger, stats *ui.Stats) (*HTTPFetcher, error) {
	if log == nil {
		log = noopLogger{}
	}

	hc, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:   cfg.Timeout,
		UserAgent: util.PickUserAgent(cfg.UserAgent),
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml",
			"Accept-Language": cfg.AcceptLanguage,
			"Referer":         cfg.Referer,
		},
		Cookie:             cfg.Cookie,
		CookieFile:         cfg.CookieFile,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		CloudflareBypass:   cfg.CloudflareBypass,
		DebugLogger:        log,
	})
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}

	return newHTTPFetcher(hc, cfg, log, stats), nil
}

func newHTTPFetcher(hc *http.Client, cfg FetchConfig, log providers.Logger, stats *ui.Stats) *HTTPFetcher {
	if log == nil {
		log = noopLogger{}
	}
	if stats == nil {
		stats = &ui.Stats{}
	}

	wait := cfg.RetryWait
	if wait <= 0 {
		wait = 500 * time.Millisecond
	}

	client := resty.NewWithClient(hc).
		SetLogger(restyLogger{log}).
		SetRetryCount(max(0, cfg.Retries)).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(4 * wait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r != nil && r.StatusCode() >= http.StatusInternalServerError
		})

	return &HTTPFetcher{client: client, log: log, stats: stats}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, target string) (string, error) {
	f.log.Debugf("Requesting page: %s\n", target)

	res, err := f.client.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		f.stats.FailedFetches.Add(1)
		return "", fmt.Errorf("fetch %s: %w", target, err)
	}

	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		f.stats.FailedFetches.Add(1)
		return "", fmt.Errorf("fetch %s: HTTP %d", target, res.StatusCode())
	}

	body := res.Body()
	f.stats.PagesFetched.Add(1)
	f.stats.TotalBytes.Add(int64(len(body)))
	f.log.Debugf("Response status: %d (%s)\n", res.StatusCode(), util.Human(int64(len(body))))

	return string(body), nil
}

type restyLogger struct {
	log providers.Logger
}

func (l restyLogger) Errorf(format string, v ...any) { l.log.Debugf("resty: "+format+"\n", v...) }
func (l restyLogger) Warnf(format string, v ...any)  { l.log.Debugf("resty: "+format+"\n", v...) }
func (l restyLogger) Debugf(format string, v ...any) { l.log.Debugf("resty: "+format+"\n", v...) }

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}
