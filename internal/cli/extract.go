// internal/cli/extract.go
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	newscrawl "github.com/Ali-Choubdaran/corporate-news-extraction"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/output"
	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

var (
	extractOutputDir string
	extractFormat    string
	extractFromList  string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [article-url...]",
	Short: "Extract structured content from article pages",
	Long: `Fetches each article page and extracts its title, publication date, body
blocks with boilerplate flags, and tables. Results print as labeled trees or
save as JSON/Markdown files.`,
	Example: `  # Extract one article to stdout
  newscrawl extract https://example.com/news/q3-results

  # Extract a whole discovered list to JSON files
  newscrawl extract --from urls.json --output-dir out/ --format json

  # Drop low-confidence extractions
  newscrawl extract https://example.com/news/q3-results --min-confidence 0.7`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().Float64("min-confidence", 0, "Reject records scoring below this confidence")
	extractCmd.Flags().Bool("strip-boilerplate", false, "Drop flagged boilerplate blocks from output")
	extractCmd.Flags().StringVar(&extractFromList, "from", "", "JSON file of URLs produced by discover -o")
	extractCmd.Flags().StringVar(&extractOutputDir, "output-dir", "", "Directory to save one file per article")
	extractCmd.Flags().StringVar(&extractFormat, "format", "tree", "Output format: tree, json, or markdown")
}

func runExtract(cmd *cobra.Command, args []string) error {
	urls := args
	if extractFromList != "" {
		fromFile, err := output.LoadURLList(extractFromList)
		if err != nil {
			return fmt.Errorf("load url list: %w", err)
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no article URLs given")
	}

	stripBoilerplate, _ := cmd.Flags().GetBool("strip-boilerplate")
	exCfg := newscrawl.DefaultExtractConfig()
	exCfg.MinConfidence = cfg.MinConfidence
	exCfg.StripBoilerplate = stripBoilerplate
	exCfg.NoRenderFallback = !cfg.RenderFallback

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
	defer cancel()

	svc := newService()

	if len(urls) == 1 {
		record, err := svc.ExtractContent(ctx, urls[0], exCfg)
		if err != nil {
			return err
		}
		return emit(svc, record, urls[0])
	}

	bar := progressbar.Default(int64(len(urls)), "extracting")
	failures := 0
	for result := range svc.ExtractAll(ctx, urls, exCfg) {
		_ = bar.Add(1)
		if result.Err != nil {
			failures++
			log.Warn().Err(result.Err).Str("url", result.URL).Msg("extraction failed")
			continue
		}
		if err := emit(svc, result.Record, result.URL); err != nil {
			return err
		}
	}
	log.Info().Int("total", len(urls)).Int("failed", failures).Msg("batch extraction finished")
	return nil
}

func emit(svc *newscrawl.Service, record *models.ArticleRecord, articleURL string) error {
	if extractOutputDir == "" {
		fmt.Fprintln(os.Stdout, svc.LabelTree(record))
		return nil
	}

	name := fileStem(articleURL)
	switch extractFormat {
	case "json":
		return output.SaveJSON(record, filepath.Join(extractOutputDir, name+".json"))
	case "markdown":
		return output.SaveMarkdown(record, filepath.Join(extractOutputDir, name+".md"))
	default:
		return os.WriteFile(filepath.Join(extractOutputDir, name+".txt"), []byte(svc.LabelTree(record)), 0644)
	}
}

// fileStem derives a filesystem-safe name from the article URL's last path
// segment.
func fileStem(articleURL string) string {
	trimmed := strings.TrimRight(articleURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	var b strings.Builder
	for _, r := range trimmed {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "article"
	}
	return b.String()
}
