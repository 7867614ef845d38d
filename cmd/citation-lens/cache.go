package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-lens/internal/cache"
	"github.com/pdiddy/citation-lens/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the session result cache",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the paper identifiers cached this session",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw := openGateway()
		defer gw.Close()

		ids, err := gw.Keys(cmd.Context())
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("cache is empty")
			return nil
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw := openGateway()
		defer gw.Close()

		if err := gw.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("cache cleared")
		return nil
	},
}

var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all cached bundles to stdout as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw := openGateway()
		defer gw.Close()

		ids, err := gw.Keys(cmd.Context())
		if err != nil {
			return err
		}
		sort.Strings(ids)

		var bundles []*types.ResultBundle
		for _, id := range ids {
			if b, ok := gw.Get(cmd.Context(), id); ok {
				bundles = append(bundles, b)
			}
		}

		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(bundles)
	},
}

func openGateway() *cache.Gateway {
	cfg := loadAppConfig()
	return cache.New(cfg.Cache, newLogger())
}

func init() {
	cacheCmd.AddCommand(cacheShowCmd, cacheClearCmd, cacheExportCmd)
	rootCmd.AddCommand(cacheCmd)
}
