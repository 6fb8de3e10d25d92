// internal/cli/root.go
package cli

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	newscrawl "github.com/Ali-Choubdaran/corporate-news-extraction"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "newscrawl",
	Short:   "Discover and extract corporate press-release articles",
	Long:    `Newscrawl walks a company's press-release listing page through whatever pagination it uses, collects the individual article URLs, and extracts each article into a structured record.`,
	Version: "0.1.0",
}

var cfg *config.Config

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	cobra.OnInitialize(initConfig)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// initConfig reads flags and ENV variables and configures global logging.
func initConfig() {
	loaded, err := config.Load(rootCmd)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load configuration, using defaults")
		loaded = &config.Config{
			HTTPTimeout:    config.DefaultHTTPTimeout,
			MaxPages:       config.DefaultMaxPages,
			RenderFallback: config.DefaultRenderFallback,
			RateLimitRPS:   config.DefaultRateLimitRPS,
			RateLimitBurst: config.DefaultRateLimitBurst,
		}
	}
	cfg = loaded

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.JSONLog {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// newService builds the shared Service from loaded configuration.
func newService() *newscrawl.Service {
	opts := []newscrawl.Option{
		newscrawl.WithHTTPTimeout(cfg.HTTPTimeout),
		newscrawl.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		newscrawl.WithConcurrency(cfg.Concurrency),
		newscrawl.WithCache(cfg.CacheMaxSizeBytes, cfg.CacheTTL),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, newscrawl.WithUserAgent(cfg.UserAgent))
	}
	if cfg.ChromePath != "" {
		opts = append(opts, newscrawl.WithChromePath(cfg.ChromePath))
	}
	return newscrawl.New(opts...)
}

// commandTimeout bounds an entire CLI invocation, generously scaled from the
// per-request timeout so long pagination walks still finish.
func commandTimeout() time.Duration {
	return cfg.HTTPTimeout * time.Duration(cfg.MaxPages)
}
