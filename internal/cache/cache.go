// Package cache keeps fetched pages in a badger store so repeated runs
// against the same site do not refetch unchanged index pages.
package cache

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/purell"
	"github.com/dgraph-io/badger/v4"
	"github.com/zhouqcn/legalinfocollector/internal/providers"
	"github.com/zhouqcn/legalinfocollector/internal/ui"
)

var ErrNotFound = errors.New("page not cached")

type page struct {
	Contents  []byte
	ExpiresAt int64
}

type PageCache struct {
	db  *badger.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens (or creates) a cache directory. An empty dir keeps the cache in
// memory for the lifetime of the process.
func Open(dir string, ttl time.Duration) (*PageCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open page cache: %w", err)
	}

	return New(db, ttl), nil
}

func New(db *badger.DB, ttl time.Duration) *PageCache {
	return &PageCache{db: db, ttl: ttl, now: time.Now}
}

func (c *PageCache) Close() error {
	return c.db.Close()
}

// Key normalizes a page URL so trivially different spellings share an entry.
func Key(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	return purell.NormalizeURL(
		u,
		purell.FlagsSafe|
			purell.FlagRemoveDotSegments|
			purell.FlagRemoveDirectoryIndex|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	), nil
}

func (c *PageCache) Get(target string) (string, error) {
	key, err := Key(target)
	if err != nil {
		return "", err
	}

	var cached page
	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		serialized, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return gob.NewDecoder(bytes.NewReader(serialized)).Decode(&cached)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read cached page: %w", err)
	}

	if c.now().Unix() >= cached.ExpiresAt {
		err = c.db.Update(func(txn *badger.Txn) error {
			return txn.Delete([]byte(key))
		})
		if err != nil {
			return "", fmt.Errorf("delete expired page: %w", err)
		}
		return "", ErrNotFound
	}

	return string(cached.Contents), nil
}

func (c *PageCache) Set(target, contents string) error {
	key, err := Key(target)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = gob.NewEncoder(&buf).Encode(page{
		Contents:  []byte(contents),
		ExpiresAt: c.now().Add(c.ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("serialize page: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), buf.Bytes())
	})
}

// Fetcher serves pages from the cache and falls through to next on a miss.
// Cache errors never fail a fetch.
type Fetcher struct {
	next  providers.Fetcher
	cache *PageCache
	log   providers.Logger
	stats *ui.Stats
}

var _ providers.Fetcher = (*Fetcher)(nil)

func NewFetcher(next providers.Fetcher, cache *PageCache, log providers.Logger, stats *ui.Stats) *Fetcher {
	if stats == nil {
		stats = &ui.Stats{}
	}
	return &Fetcher{next: next, cache: cache, log: log, stats: stats}
}

func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	contents, err := f.cache.Get(target)
	if err == nil {
		f.stats.CacheHits.Add(1)
		f.debugf("Cache hit: %s\n", target)
		return contents, nil
	}
	if !errors.Is(err, ErrNotFound) {
		f.debugf("Cache read failed for %s: %v\n", target, err)
	}

	contents, err = f.next.Fetch(ctx, target)
	if err != nil {
		return "", err
	}

	if err := f.cache.Set(target, contents); err != nil {
		f.debugf("Cache write failed for %s: %v\n", target, err)
	}

	return contents, nil
}

func (f *Fetcher) debugf(format string, args ...any) {
	if f.log != nil {
		f.log.Debugf(format, args...)
	}
}
