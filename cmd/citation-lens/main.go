// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citation-lens CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-lens/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the citation-lens CLI.
var rootCmd = &cobra.Command{
	Use:   "citation-lens",
	Short: "Citation overlays for arXiv papers",
	Long: `citation-lens looks an arXiv paper up in the Semantic Scholar citation
graph and builds an overlay: the paper's citation count, the most-cited papers
citing it, and the most-cited other works by its authors.

Results are cached per paper for the length of a session, so repeat lookups
cost no network calls. The serve command exposes the same overlay as a local
JSON endpoint for the browser widget.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citation-lens.yaml or ~/.config/citation-lens/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citation-lens")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citation-lens"))
		}
	}

	viper.SetEnvPrefix("CITATION_LENS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadAppConfig assembles the configuration from viper with defaults filled in.
func loadAppConfig() types.AppConfig {
	cfg := types.AppConfig{
		Overlay: types.OverlayConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("overlay.timeout"),
				UserAgent: viper.GetString("overlay.user_agent"),
			},
			MaxAuthors:          viper.GetInt("overlay.max_authors"),
			WorksPerAuthorLimit: viper.GetInt("overlay.works_per_author_limit"),
			CitationsPageLimit:  viper.GetInt("overlay.citations_page_limit"),
			TopListLimit:        viper.GetInt("overlay.top_list_limit"),
			RequestsPerSecond:   viper.GetFloat64("overlay.requests_per_second"),
		},
		Cache: types.CacheConfig{
			Dir:        viper.GetString("cache.dir"),
			SessionTTL: viper.GetDuration("cache.session_ttl"),
		},
		Serve: types.ServeConfig{
			Addr: viper.GetString("serve.addr"),
		},
	}
	cfg.Overlay.ApplyDefaults()

	if cfg.Overlay.Timeout <= 0 {
		cfg.Overlay.Timeout = 30 * time.Second
	}
	if cfg.Cache.Dir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			cfg.Cache.Dir = filepath.Join(base, "citation-lens")
		}
	}
	if cfg.Cache.SessionTTL <= 0 {
		cfg.Cache.SessionTTL = types.DefaultSessionTTL
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = "127.0.0.1:7151"
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
