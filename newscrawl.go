// Package newscrawl discovers corporate press-release article URLs behind
// paginated listing pages and extracts each article into a structured,
// confidence-scored record. It is the public surface of the module; the
// fetch, navigation, classification, and extraction machinery lives under
// internal/.
package newscrawl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/batch"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/classify"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/config"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/extract"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/fetch"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/label"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/navigate"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/ratelimit"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/urlutil"
	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// ErrLowConfidence is returned by ExtractContent when the record scores
// below the configured minimum.
var ErrLowConfidence = errors.New("extraction confidence below minimum")

// Service wires the fetch client, classifier, navigator, and extractor
// behind the two public operations. One Service is safe for concurrent use;
// the per-host rate limiter is its only shared mutable state.
type Service struct {
	client      *fetch.Client
	classifier  *classify.Classifier
	concurrency int

	userAgent      string
	httpTimeout    time.Duration
	rateLimitRPS   float64
	rateLimitBurst int
	chromePath     string
	cacheMaxBytes  int64
	cacheTTL       time.Duration
}

// New builds a Service with the documented defaults: 30s HTTP timeout,
// 1 request per second per host, rotating browser user agents, and no page
// cache.
func New(opts ...Option) *Service {
	s := &Service{
		httpTimeout:    config.DefaultHTTPTimeout,
		rateLimitRPS:   config.DefaultRateLimitRPS,
		rateLimitBurst: config.DefaultRateLimitBurst,
		concurrency:    config.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}

	static := fetch.NewStaticFetcher(s.httpTimeout, s.userAgent)
	rendered := fetch.NewRenderedFetcher(config.DefaultRenderTimeout, s.chromePath)

	clientOpts := []fetch.Option{
		fetch.WithRendered(rendered),
		fetch.WithLimiter(ratelimit.NewHostLimiter(s.rateLimitRPS, s.rateLimitBurst)),
	}
	if s.cacheMaxBytes > 0 {
		clientOpts = append(clientOpts, fetch.WithCache(fetch.NewPageCache(s.cacheMaxBytes, s.cacheTTL)))
	}

	s.client = fetch.NewClient(static, clientOpts...)
	s.classifier = classify.New(classify.DefaultWeights())
	return s
}

// DiscoverResult is the outcome of one DiscoverArticles run.
type DiscoverResult struct {
	// URLs are normalized article URLs in discovery order.
	URLs []string
	// Mode is the pagination modality the navigator settled on.
	Mode models.PaginationMode
	// Status is EXHAUSTED after a complete walk, FAILED when the base page
	// could not be fetched. Partial URL sets accompany FAILED.
	Status models.ListingStatus
	// Errs collects non-fatal per-page failures encountered during the walk.
	Errs []error
}

// DiscoverArticles enumerates every listing page reachable from baseURL and
// returns the article URLs found on them. The walk always terminates: page
// keys are visited at most once, two consecutive empty pages end the run,
// and a hard page cap backstops both.
func (s *Service) DiscoverArticles(ctx context.Context, baseURL string, cfg DiscoverConfig) (*DiscoverResult, error) {
	if err := urlutil.ValidateURL(baseURL); err != nil {
		return nil, fmt.Errorf("discover articles: %w", err)
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = config.DefaultMaxPages
	}

	nav := navigate.New(s.fetcherFor(!cfg.NoRenderFallback), s.classifier, cfg.MaxPages)
	state := nav.Run(ctx, baseURL)

	return &DiscoverResult{
		URLs:   state.DiscoveredLinks,
		Mode:   state.Mode,
		Status: state.Status,
		Errs:   state.Errs,
	}, nil
}

// ExtractContent fetches one article page and extracts its structured
// record. The error is non-nil only for hard failures: unfetchable page,
// unparseable markup, no title, or no body after every fallback.
func (s *Service) ExtractContent(ctx context.Context, articleURL string, cfg ExtractConfig) (*models.ArticleRecord, error) {
	if err := urlutil.ValidateURL(articleURL); err != nil {
		return nil, fmt.Errorf("extract content: %w", err)
	}

	page, err := s.fetcherFor(!cfg.NoRenderFallback).Fetch(ctx, articleURL, false)
	if err != nil {
		return nil, fmt.Errorf("extract content: %w", err)
	}

	record, err := extract.Extract(page.HTML, articleURL)
	if err != nil {
		return nil, err
	}

	if cfg.StripBoilerplate {
		kept := record.Body[:0:0]
		for _, block := range record.Body {
			if !block.IsBoilerplate {
				kept = append(kept, block)
			}
		}
		record.Body = kept
	}

	if cfg.MinConfidence > 0 && record.Confidence < cfg.MinConfidence {
		return nil, fmt.Errorf("extract content %s: %w (%.2f < %.2f)",
			articleURL, ErrLowConfidence, record.Confidence, cfg.MinConfidence)
	}

	return record, nil
}

// LabelTree serializes a record into the normalized labeled-content tree.
// The output is deterministic: identical records produce byte-identical
// trees.
func (s *Service) LabelTree(record *models.ArticleRecord) string {
	return label.Tree(record)
}

// ExtractResult pairs one URL from a batch with its record or error.
type ExtractResult struct {
	URL    string
	Record *models.ArticleRecord
	Err    error
}

// ExtractAll runs ExtractContent over many URLs with bounded concurrency,
// streaming results in completion order.
func (s *Service) ExtractAll(ctx context.Context, urls []string, cfg ExtractConfig) <-chan ExtractResult {
	pool := batch.New(s.concurrency)
	inner := batch.Run(ctx, pool, urls, func(ctx context.Context, u string) (*models.ArticleRecord, error) {
		return s.ExtractContent(ctx, u, cfg)
	})

	out := make(chan ExtractResult, len(urls))
	go func() {
		for r := range inner {
			out <- ExtractResult{URL: r.Key, Record: r.Value, Err: r.Err}
		}
		close(out)
	}()
	return out
}

// DiscoverAllResult pairs one base URL from a batch with its discovery
// outcome.
type DiscoverAllResult struct {
	BaseURL string
	Result  *DiscoverResult
	Err     error
}

// DiscoverAll runs DiscoverArticles over many listing base URLs with bounded
// concurrency.
func (s *Service) DiscoverAll(ctx context.Context, baseURLs []string, cfg DiscoverConfig) <-chan DiscoverAllResult {
	pool := batch.New(s.concurrency)
	inner := batch.Run(ctx, pool, baseURLs, func(ctx context.Context, u string) (*DiscoverResult, error) {
		return s.DiscoverArticles(ctx, u, cfg)
	})

	out := make(chan DiscoverAllResult, len(baseURLs))
	go func() {
		for r := range inner {
			out <- DiscoverAllResult{BaseURL: r.Key, Result: r.Value, Err: r.Err}
		}
		close(out)
	}()
	return out
}

// fetcherFor adapts the shared client to a per-call render-fallback setting.
func (s *Service) fetcherFor(renderFallback bool) *callFetcher {
	return &callFetcher{client: s.client, renderFallback: renderFallback}
}

type callFetcher struct {
	client         *fetch.Client
	renderFallback bool
}

func (f *callFetcher) Fetch(ctx context.Context, urlStr string, render bool) (*models.Page, error) {
	if !f.renderFallback {
		return f.client.FetchStaticOnly(ctx, urlStr)
	}
	return f.client.Fetch(ctx, urlStr, render)
}
