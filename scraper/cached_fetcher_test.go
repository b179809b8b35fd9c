package scraper_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/scraper"
	"airbnb-rooms-scraper/utils"
)

type memoryCache struct {
	docs   map[string]models.RawListingDocument
	getErr error
	setErr error
}

func (c *memoryCache) Get(_ context.Context, key string) (models.RawListingDocument, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	doc, ok := c.docs[key]
	return doc, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, doc models.RawListingDocument) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.docs[key] = doc
	return nil
}

func TestCacheKey(t *testing.T) {
	url := "https://www.airbnb.com/rooms/1"
	assert.Equal(t, url, scraper.CacheKey(url, nil))

	dates, err := models.ParseDateRange("2025-06-01", "2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, url+"|2025-06-01..2025-06-03", scraper.CacheKey(url, dates))
}

func TestCachedFetcher_MissThenHit(t *testing.T) {
	url := "https://www.airbnb.com/rooms/1"
	next := newFakeFetcher(func(context.Context, string, int) (models.RawListingDocument, error) {
		return okDoc(), nil
	})
	cache := &memoryCache{docs: map[string]models.RawListingDocument{}}
	f := scraper.NewCachedFetcher(next, cache, utils.NewNopLogger())

	for i := 0; i < 3; i++ {
		doc, err := f.Fetch(context.Background(), url, nil)
		require.NoError(t, err)
		assert.Equal(t, okDoc(), doc)
	}
	assert.Equal(t, 1, next.Calls(url))
	assert.Contains(t, cache.docs, url)
}

func TestCachedFetcher_ErrorsAreNotCached(t *testing.T) {
	url := "https://www.airbnb.com/rooms/2"
	next := newFakeFetcher(func(_ context.Context, url string, _ int) (models.RawListingDocument, error) {
		return nil, models.Permanent(url, errors.New("gone"))
	})
	cache := &memoryCache{docs: map[string]models.RawListingDocument{}}

	_, err := scraper.NewCachedFetcher(next, cache, utils.NewNopLogger()).Fetch(context.Background(), url, nil)
	assert.ErrorIs(t, err, models.ErrPermanentFetch)
	assert.Empty(t, cache.docs)
}

func TestCachedFetcher_CacheFailuresAreIgnored(t *testing.T) {
	url := "https://www.airbnb.com/rooms/3"
	next := newFakeFetcher(func(context.Context, string, int) (models.RawListingDocument, error) {
		return okDoc(), nil
	})
	cache := &memoryCache{getErr: errors.New("down"), setErr: errors.New("down")}

	doc, err := scraper.NewCachedFetcher(next, cache, utils.NewNopLogger()).Fetch(context.Background(), url, nil)
	require.NoError(t, err)
	assert.Equal(t, okDoc(), doc)
}
