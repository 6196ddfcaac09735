package ui

import "sync/atomic"

type Stats struct {
	PagesFetched  atomic.Int64
	FailedFetches atomic.Int64
	CacheHits     atomic.Int64
	TotalBytes    atomic.Int64
	TotalTitles   atomic.Int64
	TotalChapters atomic.Int64
}
