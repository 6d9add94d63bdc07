package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modcache/smc/internal/config"
	"github.com/modcache/smc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "smc",
	Short:        "Swift module interface compiler driver",
	Long:         `Build and cache binary modules from textual module interfaces`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
	rootCmd.PersistentFlags().StringP("target", "t", "", "Target triple (e.g. arm64-apple-macos13.0)")
	rootCmd.PersistentFlags().String("sdk", "", "SDK root path")
	rootCmd.PersistentFlags().String("cache-dir", "", "Module cache directory")
	rootCmd.PersistentFlags().String("resource-dir", "", "Runtime resource directory")
	rootCmd.PersistentFlags().StringSliceP("import-path", "I", []string{}, "Module import search paths")
	rootCmd.PersistentFlags().StringSliceP("framework-path", "F", []string{}, "Framework search paths")
	rootCmd.PersistentFlags().String("compiler-path", "", "Path to the frontend binary")
	rootCmd.PersistentFlags().String("compiler-version", "", "Toolchain version for cache keys (default: queried from the frontend)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolP("silent", "s", false, "Suppress console output from the frontend")
	rootCmd.PersistentFlags().Bool("prefer-binary", false, "Prefer adjacent precompiled modules over rebuilding")
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cacheCmd)

	viper.SetDefault("compiler_path", config.DefaultCompilerPath)
	viper.SetDefault("target", config.DefaultTarget)
	viper.SetDefault("cache_dir", config.DefaultCacheDir)
	viper.SetDefault("verbose", false)
	viper.SetDefault("silent", false)
}
