package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/modcache/smc/internal/artifact"
	"github.com/modcache/smc/internal/config"
	"github.com/modcache/smc/internal/diag"
	"github.com/modcache/smc/internal/engine"
	"github.com/modcache/smc/internal/loader"
)

var loadCmd = &cobra.Command{
	Use:          "load <module-name>",
	Short:        "Resolve a module to a compiled binary artifact",
	Long:         `Resolve a module by name: reuse its cached binary module if still valid, otherwise rebuild it from the textual interface and print the resulting artifact path.`,
	Args:         cobra.ExactArgs(1),
	RunE:         runLoad,
	SilenceUsage: true,
}

func init() {
	loadCmd.Flags().StringP("dir", "d", ".", "Directory to look for the module interface in")
	loadCmd.Flags().Bool("show-deps", false, "Print every dependency the load visited")
}

func runLoad(cmd *cobra.Command, args []string) error {
	name := args[0]

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}

	cfg, err := config.NewLoader().LoadForBuild(cmd, nil)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	l := loader.New(afero.NewOsFs(), cfg, engine.NewExec(), &diag.LogSink{Logger: logger})

	showDeps, _ := cmd.Flags().GetBool("show-deps")
	tracker := loader.NewTracker()
	if showDeps {
		l.Tracker = tracker
	}

	path, err := l.OpenModule(name, absDir, name+artifact.Extension)
	switch {
	case errors.Is(err, loader.ErrNotFound):
		return fmt.Errorf("no module interface for %q in %s", name, absDir)
	case errors.Is(err, loader.ErrDefer):
		logger.Info("precompiled module present, deferring to the binary loader", "module", name)
		return nil
	case err != nil:
		return err
	}

	fmt.Println(path)

	if showDeps {
		for _, dep := range tracker.Dependencies() {
			fmt.Fprintln(os.Stderr, dep)
		}
	}

	return nil
}
