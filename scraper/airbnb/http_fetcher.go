package airbnb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/utils"
)

const (
	maxPageBytes     = 8 << 20
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// HTTPOptions configures HTTPFetcher.
type HTTPOptions struct {
	Timeout   time.Duration
	UserAgent string
	// TransportRetries retries connection-level errors inside one fetch
	// attempt. Status based retries are left to the orchestrator.
	TransportRetries int
}

// HTTPFetcher loads room pages with plain HTTP requests.
type HTTPFetcher struct {
	client    *retryablehttp.Client
	userAgent string
	logger    *utils.Logger
}

// NewHTTPFetcher creates a new HTTPFetcher
func NewHTTPFetcher(opts HTTPOptions, logger *utils.Logger) *HTTPFetcher {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = time.Second
	rc.RetryMax = opts.TransportRetries
	rc.CheckRetry = connectionErrorsOnly
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = logger.Leveled()
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &HTTPFetcher{client: rc, userAgent: ua, logger: logger}
}

func connectionErrorsOnly(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Fetch downloads the room page and returns its embedded room document.
func (f *HTTPFetcher) Fetch(ctx context.Context, roomURL string, dates *models.DateRange) (models.RawListingDocument, error) {
	target, err := RequestURL(roomURL, dates)
	if err != nil {
		return nil, models.Permanent(roomURL, err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, models.Permanent(roomURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, models.Transient(roomURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, statusError(roomURL, resp.StatusCode)
	}
	if !isRoomPath(resp.Request.URL) {
		// removed rooms redirect to the home or search page
		return nil, models.Permanent(roomURL, fmt.Errorf("redirected to %s", resp.Request.URL))
	}

	doc, err := ParseRoomPage(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		if errors.Is(err, ErrNoRoomState) {
			return nil, models.Permanent(roomURL, err)
		}
		return nil, models.Transient(roomURL, err)
	}
	f.logger.Debug("Fetched %s (%d top-level keys)", roomURL, len(doc))
	return doc, nil
}

// statusError classifies a non-200 response.
func statusError(url string, status int) error {
	kind := models.KindPermanentFetch
	switch {
	case status == http.StatusTooManyRequests, status == http.StatusRequestTimeout,
		status == http.StatusForbidden, status >= 500:
		kind = models.KindTransientFetch
	}
	return &models.FetchError{Kind: kind, URL: url, StatusCode: status, Err: errors.New(http.StatusText(status))}
}
