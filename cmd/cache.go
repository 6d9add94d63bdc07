package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/modcache/smc/internal/cache"
	"github.com/modcache/smc/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the module cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:          "stats",
	Short:        "Show module cache statistics",
	RunE:         runCacheStats,
	SilenceUsage: true,
}

var cacheClearCmd = &cobra.Command{
	Use:          "clear",
	Short:        "Remove all cached binary modules",
	RunE:         runCacheClear,
	SilenceUsage: true,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForBuild(cmd, args)
	if err != nil {
		return err
	}

	count, size, err := cache.Stats(afero.NewOsFs(), cfg.CacheDir)
	if err != nil {
		return err
	}

	fmt.Printf("Cache: %s\nModules: %d\nSize: %d bytes\n", cfg.CacheDir, count, size)

	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForBuild(cmd, args)
	if err != nil {
		return err
	}

	if err := cache.Clear(afero.NewOsFs(), cfg.CacheDir); err != nil {
		return err
	}

	fmt.Printf("Cleared module cache at %s\n", cfg.CacheDir)

	return nil
}
