// Package fetch implements the transport layer of the pipeline: rate-limited
// HTTP fetching with retry, bot-challenge detection, and escalation to a
// rendered (headless browser) fetch.
package fetch

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/ratelimit"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/retry"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/urlutil"
	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// Fetcher retrieves a single page. Implementations must be safe for
// concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, urlStr string) (*models.Page, error)
	Name() string
}

// Client is the fetch entrypoint the navigator and extractor use. It applies
// the per-host rate limit, retries transient failures with backoff, and
// escalates bot-challenged requests to the rendered fetcher once.
type Client struct {
	static         Fetcher
	rendered       Fetcher
	limiter        ratelimit.Limiter
	retryCfg       retry.Config
	renderFallback bool
	cache          *PageCache
}

// Option configures a Client.
type Option func(*Client)

// WithRendered sets the rendered-fetch escalation target.
func WithRendered(f Fetcher) Option {
	return func(c *Client) { c.rendered = f }
}

// WithLimiter sets the shared per-host rate limiter.
func WithLimiter(l ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithRetryConfig overrides the default retry behavior.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *Client) { c.retryCfg = cfg }
}

// WithRenderFallback toggles rendered-fetch escalation.
func WithRenderFallback(enabled bool) Option {
	return func(c *Client) { c.renderFallback = enabled }
}

// WithCache attaches an optional page cache.
func WithCache(cache *PageCache) Option {
	return func(c *Client) { c.cache = cache }
}

// NewClient builds a Client around a static fetcher.
func NewClient(static Fetcher, opts ...Option) *Client {
	c := &Client{
		static:         static,
		limiter:        ratelimit.NewHostLimiter(1.0, 1),
		retryCfg:       retry.DefaultConfig(),
		renderFallback: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves markup for a URL. When render is false the static path is
// tried first; a bot-challenge result triggers exactly one escalation to the
// rendered path (if configured), after which the challenge error stands.
func (c *Client) Fetch(ctx context.Context, urlStr string, render bool) (*models.Page, error) {
	if err := urlutil.ValidateURL(urlStr); err != nil {
		return nil, NewError(KindPermanent, urlStr, 0, err)
	}

	key := urlutil.Normalize(urlStr)
	if c.cache != nil {
		if page, ok := c.cache.Get(key); ok {
			log.Debug().Str("url", urlStr).Msg("Cache hit")
			return page, nil
		}
	}

	var page *models.Page
	var err error

	if render && c.rendered != nil {
		page, err = c.fetchWithRetry(ctx, c.rendered, urlStr)
	} else {
		page, err = c.fetchWithRetry(ctx, c.static, urlStr)
		if err != nil && IsBotChallenge(err) && c.renderFallback && c.rendered != nil {
			log.Info().
				Str("url", urlStr).
				Msg("Escalating to rendered fetch after bot challenge")
			page, err = c.fetchWithRetry(ctx, c.rendered, urlStr)
		}
	}

	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(key, page)
	}
	return page, nil
}

// FetchStaticOnly retrieves a URL without rendered-fetch escalation: a bot
// challenge surfaces as the error it is.
func (c *Client) FetchStaticOnly(ctx context.Context, urlStr string) (*models.Page, error) {
	if err := urlutil.ValidateURL(urlStr); err != nil {
		return nil, NewError(KindPermanent, urlStr, 0, err)
	}

	key := urlutil.Normalize(urlStr)
	if c.cache != nil {
		if page, ok := c.cache.Get(key); ok {
			return page, nil
		}
	}

	page, err := c.fetchWithRetry(ctx, c.static, urlStr)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(key, page)
	}
	return page, nil
}

// fetchWithRetry runs one fetcher under the rate limiter and retry policy.
// The limiter is waited on before every attempt so retries also pace out.
func (c *Client) fetchWithRetry(ctx context.Context, f Fetcher, urlStr string) (*models.Page, error) {
	var page *models.Page

	err := retry.Do(ctx, c.retryCfg, func() error {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx, urlStr); err != nil {
				return err
			}
		}

		p, err := f.Fetch(ctx, urlStr)
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// DefaultTimeout is the per-attempt fetch timeout.
const DefaultTimeout = 30 * time.Second
