package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel = "info"
	DefaultJSONLog  = false

	DefaultHTTPTimeout = 30 * time.Second
	DefaultUserAgent   = "" // empty selects a rotating browser user agent

	DefaultMaxPages       = 500
	DefaultRenderFallback = true

	DefaultRateLimitRPS   = 1.0
	DefaultRateLimitBurst = 1

	DefaultBrowserHeadless = true
	DefaultRenderTimeout   = 60 * time.Second

	DefaultCacheTTL          = 5 * time.Minute
	DefaultCacheMaxSizeBytes = 100 * 1024 * 1024 // 100MB

	DefaultMinConfidence       = 0.0
	DefaultPreserveBoilerplate = true

	DefaultConcurrency    = 0 // 0 = auto-tune from system resources
	DefaultMaxConcurrency = 50
)
