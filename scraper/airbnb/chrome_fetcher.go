package airbnb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/utils"
)

// ChromeOptions configures ChromeFetcher.
type ChromeOptions struct {
	Headless  bool
	UserAgent string
	Timeout   time.Duration
}

// ChromeFetcher renders room pages in headless Chrome. One browser is shared
// and every fetch runs in its own tab, so fetches may run concurrently.
type ChromeFetcher struct {
	browserCtx context.Context
	cancel     context.CancelFunc
	timeout    time.Duration
	logger     *utils.Logger
}

// NewChromeFetcher starts the browser. Close must be called to stop it.
func NewChromeFetcher(opts ChromeOptions, logger *utils.Logger) (*ChromeFetcher, error) {
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.UserAgent(ua),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}

	// the first Run launches the browser
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger.Info("Chrome started (headless=%v)", opts.Headless)
	return &ChromeFetcher{browserCtx: browserCtx, cancel: cancel, timeout: timeout, logger: logger}, nil
}

// Fetch opens the room in a new tab and parses the rendered page.
func (f *ChromeFetcher) Fetch(ctx context.Context, roomURL string, dates *models.DateRange) (models.RawListingDocument, error) {
	target, err := RequestURL(roomURL, dates)
	if err != nil {
		return nil, models.Permanent(roomURL, err)
	}

	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html, location string
	err = chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, models.Transient(roomURL, fmt.Errorf("page load timed out after %v", f.timeout))
		}
		return nil, models.Transient(roomURL, fmt.Errorf("navigate failed: %w", err))
	}

	if final, err := url.Parse(location); err == nil && !isRoomPath(final) {
		return nil, models.Permanent(roomURL, fmt.Errorf("redirected to %s", location))
	}

	doc, err := ParseRoomPage(strings.NewReader(html))
	if err != nil {
		if errors.Is(err, ErrNoRoomState) {
			return nil, models.Permanent(roomURL, err)
		}
		return nil, models.Transient(roomURL, err)
	}
	f.logger.Debug("Rendered %s", roomURL)
	return doc, nil
}

// Close shuts the browser down.
func (f *ChromeFetcher) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}
