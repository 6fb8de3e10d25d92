package fetch

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// RenderedFetcher retrieves pages through headless Chrome so pages that
// assemble their DOM client-side, or sit behind JS challenges, still yield
// usable markup.
type RenderedFetcher struct {
	headless   bool
	chromePath string
	timeout    time.Duration
}

// NewRenderedFetcher creates a RenderedFetcher with default settings.
func NewRenderedFetcher(timeout time.Duration, chromePath string) *RenderedFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RenderedFetcher{
		headless:   true,
		chromePath: chromePath,
		timeout:    timeout,
	}
}

// Name returns the name of this fetcher.
func (f *RenderedFetcher) Name() string {
	return "RenderedFetcher"
}

// Fetch navigates headless Chrome to the URL and returns the rendered DOM.
func (f *RenderedFetcher) Fetch(ctx context.Context, urlStr string) (*models.Page, error) {
	start := time.Now()

	log.Debug().
		Str("url", urlStr).
		Str("fetcher", f.Name()).
		Bool("headless", f.headless).
		Msg("Starting rendered fetch")

	runCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", f.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		// The automation flag is what most bot checks sniff for.
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.Flag("mute-audio", true),
		chromedp.UserAgent(userAgents[0]),
	}
	if f.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(f.chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(runCtx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var html string
	err := chromedp.Run(browserCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "en-US,en;q=0.9",
		}),
		chromedp.Navigate(urlStr),
		// Hide the webdriver flag before any page script can read it.
		chromedp.Evaluate(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`, nil),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if runCtx.Err() != nil {
			return nil, NewError(KindTransient, urlStr, 0, ErrTimeout)
		}
		return nil, NewError(KindTransient, urlStr, 0, err)
	}

	if looksLikeChallenge(200, html) {
		// Even the rendered DOM is an interstitial; nothing more to try.
		return nil, NewError(KindBotChallenge, urlStr, 0, ErrBotChallenge)
	}

	responseTime := time.Since(start).Milliseconds()

	log.Debug().
		Str("url", urlStr).
		Int64("response_time_ms", responseTime).
		Msg("Rendered fetch completed")

	return &models.Page{
		URL:          urlStr,
		StatusCode:   200,
		HTML:         html,
		Rendered:     true,
		FetchedAt:    time.Now(),
		ResponseTime: responseTime,
	}, nil
}
