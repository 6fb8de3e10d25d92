package newscrawl

import (
	"time"

	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/config"
)

// Option customizes a Service at construction time.
type Option func(*Service)

// WithUserAgent fixes the User-Agent header instead of rotating browser
// strings.
func WithUserAgent(ua string) Option {
	return func(s *Service) { s.userAgent = ua }
}

// WithHTTPTimeout bounds each static fetch.
func WithHTTPTimeout(d time.Duration) Option {
	return func(s *Service) { s.httpTimeout = d }
}

// WithRateLimit sets the per-host request budget shared by every discovery
// and extraction call on this Service.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(s *Service) {
		s.rateLimitRPS = requestsPerSecond
		s.rateLimitBurst = burst
	}
}

// WithChromePath points the rendered fetcher at a specific browser binary.
func WithChromePath(path string) Option {
	return func(s *Service) { s.chromePath = path }
}

// WithCache enables the in-memory page cache.
func WithCache(maxSizeBytes int64, ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheMaxBytes = maxSizeBytes
		s.cacheTTL = ttl
	}
}

// WithConcurrency bounds batch operations. Zero auto-tunes from system
// resources.
func WithConcurrency(n int) Option {
	return func(s *Service) { s.concurrency = n }
}

// DiscoverConfig are the per-call options of DiscoverArticles. The zero
// value is the documented default behavior.
type DiscoverConfig struct {
	// MaxPages caps pagination steps per run. Zero means the default of 500.
	MaxPages int
	// NoRenderFallback disables the headless-browser escalation that
	// otherwise fires when static fetching hits a bot challenge.
	NoRenderFallback bool
}

// DefaultDiscoverConfig returns the documented defaults.
func DefaultDiscoverConfig() DiscoverConfig {
	return DiscoverConfig{MaxPages: config.DefaultMaxPages}
}

// ExtractConfig are the per-call options of ExtractContent. The zero value
// is the documented default behavior: boilerplate blocks stay in the record
// and bot challenges escalate to a headless browser.
type ExtractConfig struct {
	// MinConfidence rejects records whose extraction confidence falls below
	// it. Zero keeps everything.
	MinConfidence float64
	// StripBoilerplate drops flagged boilerplate blocks from the returned
	// record. By default they are retained and only flagged.
	StripBoilerplate bool
	// NoRenderFallback disables the headless-browser escalation on bot
	// challenges.
	NoRenderFallback bool
}

// DefaultExtractConfig returns the documented defaults.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{MinConfidence: config.DefaultMinConfidence}
}
