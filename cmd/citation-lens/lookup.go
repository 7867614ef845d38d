// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-lens/internal/cache"
	"github.com/pdiddy/citation-lens/internal/httputil"
	"github.com/pdiddy/citation-lens/internal/ident"
	"github.com/pdiddy/citation-lens/internal/overlay"
	"github.com/pdiddy/citation-lens/internal/scholar"
)

// bareIDPattern accepts a raw arXiv identifier as a convenience, so users
// can pass "2301.00001" instead of the full page URL.
var bareIDPattern = regexp.MustCompile(`^\d{4}\.\d{4,5}$`)

var lookupCmd = &cobra.Command{
	Use:   "lookup <arxiv-url-or-id>",
	Short: "Build the citation overlay for an arXiv paper",
	Long: `Lookup fetches the paper from the Semantic Scholar citation graph,
then concurrently fetches the papers citing it and the works of its first
authors, and prints the ranked overlay. The result is cached per identifier
for the session; repeat lookups are served from the cache.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arxivID, ok := ident.FromURL(args[0])
		if !ok {
			if !bareIDPattern.MatchString(args[0]) {
				return fmt.Errorf("%q is not an arXiv paper page or identifier", args[0])
			}
			arxivID = args[0]
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		asYAML, _ := cmd.Flags().GetBool("yaml")

		cfg := loadAppConfig()
		logger := newLogger()

		gw := cache.New(cfg.Cache, logger)
		defer gw.Close()

		client := scholar.NewClient(
			scholar.WithHTTPClient(httputil.NewClient(cfg.Overlay.Timeout, cfg.Overlay.UserAgent)),
			scholar.WithRateLimit(cfg.Overlay.RequestsPerSecond),
		)
		pipeline := overlay.New(client, gw, cfg.Overlay, logger)

		var outcome error
		pipeline.Lookup(cmd.Context(), arxivID, func(e overlay.Event) {
			switch e.Kind {
			case overlay.EventLoading:
				fmt.Fprintln(os.Stderr, "fetching citation graph...")
			case overlay.EventError:
				outcome = fmt.Errorf("%s", e.Message)
			case overlay.EventReady:
				if e.FromCache {
					fmt.Fprintln(os.Stderr, "(cached)")
				}
				switch {
				case asJSON:
					outcome = overlay.FormatJSON(e.Bundle, os.Stdout)
				case asYAML:
					outcome = overlay.FormatYAML(e.Bundle, os.Stdout)
				default:
					overlay.FormatTable(e.Bundle, os.Stdout)
				}
			}
		})
		return outcome
	},
}

// newLogger builds the slog logger the cache and overlay components use.
// Diagnostics go to stderr; rendered output owns stdout.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	lookupCmd.Flags().Bool("json", false, "output the bundle as JSON")
	lookupCmd.Flags().Bool("yaml", false, "output the bundle as YAML")

	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.AddCommand(lookupCmd)
}
