package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP/Fetching
	HTTPTimeout time.Duration
	UserAgent   string

	// Discovery
	MaxPages       int
	RenderFallback bool

	// Rate Limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Browser
	BrowserHeadless bool
	ChromePath      string
	RenderTimeout   time.Duration

	// Caching
	CacheTTL          time.Duration
	CacheMaxSizeBytes int64

	// Extraction
	MinConfidence       float64
	PreserveBoilerplate bool

	// Batch
	Concurrency int
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags. Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:            DefaultLogLevel,
		JSONLog:             DefaultJSONLog,
		HTTPTimeout:         DefaultHTTPTimeout,
		UserAgent:           DefaultUserAgent,
		MaxPages:            DefaultMaxPages,
		RenderFallback:      DefaultRenderFallback,
		RateLimitRPS:        DefaultRateLimitRPS,
		RateLimitBurst:      DefaultRateLimitBurst,
		BrowserHeadless:     DefaultBrowserHeadless,
		RenderTimeout:       DefaultRenderTimeout,
		CacheTTL:            DefaultCacheTTL,
		CacheMaxSizeBytes:   DefaultCacheMaxSizeBytes,
		MinConfidence:       DefaultMinConfidence,
		PreserveBoilerplate: DefaultPreserveBoilerplate,
		Concurrency:         DefaultConcurrency,
	}

	if v := os.Getenv("NEWSCRAWL_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("NEWSCRAWL_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("NEWSCRAWL_RATE_LIMIT"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = rps
		}
	}

	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("max-pages"); f != nil {
			if n, err := strconv.Atoi(f.Value.String()); err == nil && n > 0 {
				cfg.MaxPages = n
			}
		}
		if f := cmd.Flags().Lookup("rate-limit"); f != nil {
			if rps, err := strconv.ParseFloat(f.Value.String(), 64); err == nil && rps > 0 {
				cfg.RateLimitRPS = rps
			}
		}
		if f := cmd.Flags().Lookup("no-render-fallback"); f != nil {
			if f.Value.String() == "true" {
				cfg.RenderFallback = false
			}
		}
		if f := cmd.Flags().Lookup("concurrency"); f != nil {
			if n, err := strconv.Atoi(f.Value.String()); err == nil {
				cfg.Concurrency = n
			}
		}
		if f := cmd.Flags().Lookup("min-confidence"); f != nil {
			if mc, err := strconv.ParseFloat(f.Value.String(), 64); err == nil {
				cfg.MinConfidence = mc
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
