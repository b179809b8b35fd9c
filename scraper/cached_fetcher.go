package scraper

import (
	"context"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/utils"
)

// DocumentCache stores raw documents between runs.
type DocumentCache interface {
	Get(ctx context.Context, key string) (models.RawListingDocument, bool, error)
	Set(ctx context.Context, key string, doc models.RawListingDocument) error
}

// CachedFetcher serves documents from a cache and fills it on a miss. Cache
// errors are logged and never fail a fetch.
type CachedFetcher struct {
	next   Fetcher
	cache  DocumentCache
	logger *utils.Logger
}

// NewCachedFetcher wraps next with cache
func NewCachedFetcher(next Fetcher, cache DocumentCache, logger *utils.Logger) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache, logger: logger}
}

// CacheKey identifies a document by URL and stay, since the price depends on the dates.
func CacheKey(url string, dates *models.DateRange) string {
	if dates == nil {
		return url
	}
	return url + "|" + dates.String()
}

func (f *CachedFetcher) Fetch(ctx context.Context, url string, dates *models.DateRange) (models.RawListingDocument, error) {
	key := CacheKey(url, dates)
	doc, ok, err := f.cache.Get(ctx, key)
	switch {
	case err != nil:
		f.logger.Warn("Cache read failed for %s: %v", url, err)
	case ok:
		f.logger.Debug("Cache hit for %s", url)
		return doc, nil
	}

	doc, err = f.next.Fetch(ctx, url, dates)
	if err != nil {
		return nil, err
	}
	if err := f.cache.Set(ctx, key, doc); err != nil {
		f.logger.Warn("Cache write failed for %s: %v", url, err)
	}
	return doc, nil
}
