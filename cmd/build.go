package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/modcache/smc/internal/artifact"
	"github.com/modcache/smc/internal/config"
	"github.com/modcache/smc/internal/diag"
	"github.com/modcache/smc/internal/engine"
	"github.com/modcache/smc/internal/loader"
)

var buildCmd = &cobra.Command{
	Use:          "build <file.swiftinterface>",
	Short:        "Build a binary module from a textual interface",
	Long:         `Compile one textual module interface directly to a binary module, bypassing the cache.`,
	Args:         cobra.ExactArgs(1),
	RunE:         runBuild,
	SilenceUsage: true,
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "Output path for the binary module")
	buildCmd.Flags().String("module-name", "", "Expected module name (defaults to the file name)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	file := args[0]
	if !strings.HasSuffix(file, loader.InterfaceExtension) {
		return fmt.Errorf("file must have %s extension", loader.InterfaceExtension)
	}

	absFile, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	name, err := cmd.Flags().GetString("module-name")
	if err != nil {
		return err
	}

	if name == "" {
		name = strings.TrimSuffix(filepath.Base(absFile), loader.InterfaceExtension)
	}

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	if out == "" {
		out = strings.TrimSuffix(absFile, loader.InterfaceExtension) + artifact.Extension
	}

	absOut, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}

	cfg, err := config.NewLoader().LoadForBuild(cmd, args)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	l := loader.New(afero.NewOsFs(), cfg, engine.NewExec(), &diag.LogSink{Logger: logger})

	if err := l.BuildInterface(name, absFile, absOut); err != nil {
		return err
	}

	logger.Info("built module", "module", name, "out", absOut)

	return nil
}
