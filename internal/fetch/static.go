package fetch

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// userAgents are rotated per request to blend in with ordinary browsers.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36 Edg/119.0.0.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:120.0) Gecko/20100101 Firefox/120.0",
}

// StaticFetcher retrieves pages with plain HTTP requests.
// It is the fast path; rendered fetching is the escalation.
type StaticFetcher struct {
	client    *http.Client
	userAgent string // fixed UA; empty means rotate per request
}

// NewStaticFetcher creates a StaticFetcher with an HTTP client tuned for
// connection reuse across many pages of the same host.
func NewStaticFetcher(timeout time.Duration, userAgent string) *StaticFetcher {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &StaticFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		userAgent: userAgent,
	}
}

// Name returns the name of this fetcher.
func (f *StaticFetcher) Name() string {
	return "StaticFetcher"
}

// Fetch retrieves a page over plain HTTP. Bot-challenge responses come back
// as a KindBotChallenge error so the caller can escalate to rendering.
func (f *StaticFetcher) Fetch(ctx context.Context, urlStr string) (*models.Page, error) {
	start := time.Now()

	log.Debug().
		Str("url", urlStr).
		Str("fetcher", f.Name()).
		Msg("Starting fetch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, NewError(KindPermanent, urlStr, 0, fmt.Errorf("%w: %v", ErrInvalidURL, err))
	}

	ua := f.userAgent
	if ua == "" {
		ua = userAgents[rand.Intn(len(userAgents))]
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		// Timeouts, resets, and DNS failures are all transient.
		return nil, NewError(KindTransient, urlStr, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(KindTransient, urlStr, resp.StatusCode, err)
	}

	html := string(body)

	if looksLikeChallenge(resp.StatusCode, html) {
		log.Debug().
			Str("url", urlStr).
			Int("status", resp.StatusCode).
			Msg("Bot challenge fingerprint matched")
		return nil, NewError(KindBotChallenge, urlStr, resp.StatusCode, ErrBotChallenge)
	}

	if kind := classifyStatus(resp.StatusCode); kind != "" {
		return nil, NewError(kind, urlStr, resp.StatusCode, nil)
	}

	responseTime := time.Since(start).Milliseconds()

	log.Debug().
		Str("url", urlStr).
		Int("status", resp.StatusCode).
		Int64("response_time_ms", responseTime).
		Msg("Fetch completed")

	return &models.Page{
		URL:          urlStr,
		StatusCode:   resp.StatusCode,
		HTML:         html,
		FetchedAt:    time.Now(),
		ResponseTime: responseTime,
	}, nil
}
