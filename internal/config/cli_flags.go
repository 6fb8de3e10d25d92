package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	cmd.PersistentFlags().String("timeout", "30s", "Hard timeout per request")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().Float64("rate-limit", DefaultRateLimitRPS, "Max requests per second per host")
	cmd.PersistentFlags().Int("concurrency", DefaultConcurrency, "Concurrent jobs in batch mode (0 = auto)")
	cmd.PersistentFlags().Bool("no-render-fallback", false, "Disable headless-browser fallback on bot challenges")
}
