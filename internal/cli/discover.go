// internal/cli/discover.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	newscrawl "github.com/Ali-Choubdaran/corporate-news-extraction"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/output"
	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

var discoverOutput string

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover <listing-url>",
	Short: "Enumerate article URLs behind a press-release listing page",
	Long: `Walks the listing page through its pagination (year selectors, load-more
controls, or numbered pages), classifies every anchor found, and prints the
individual article URLs.`,
	Example: `  # Discover all press-release article URLs
  newscrawl discover https://example.com/newsroom

  # Cap the pagination walk and save results
  newscrawl discover https://example.com/newsroom --max-pages 50 -o urls.json`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().Int("max-pages", 0, "Cap on pagination steps (default 500)")
	discoverCmd.Flags().StringVarP(&discoverOutput, "output", "o", "", "File path to save URL list as JSON")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	baseURL := args[0]

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
	defer cancel()

	svc := newService()
	result, err := svc.DiscoverArticles(ctx, baseURL, newscrawl.DiscoverConfig{
		MaxPages:         cfg.MaxPages,
		NoRenderFallback: !cfg.RenderFallback,
	})
	if err != nil {
		return err
	}

	for _, e := range result.Errs {
		log.Warn().Err(e).Msg("page failure during discovery")
	}
	if result.Status == models.StatusFailed {
		log.Error().Str("url", baseURL).Msg("discovery failed, results are partial")
	}

	if discoverOutput != "" {
		if err := output.SaveURLList(result.URLs, string(result.Status), discoverOutput); err != nil {
			return fmt.Errorf("save url list: %w", err)
		}
		log.Info().Str("file", discoverOutput).Int("urls", len(result.URLs)).Msg("URL list saved")
		return nil
	}

	for _, u := range result.URLs {
		fmt.Fprintln(os.Stdout, u)
	}
	log.Info().
		Int("urls", len(result.URLs)).
		Str("mode", string(result.Mode)).
		Str("status", string(result.Status)).
		Msg("discovery finished")
	return nil
}
