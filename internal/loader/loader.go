// Package loader resolves a module name to a compiled binary artifact
// by way of its textual interface, rebuilding through the compilation
// engine only when no cached artifact is still valid.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/modcache/smc/internal/artifact"
	"github.com/modcache/smc/internal/cache"
	"github.com/modcache/smc/internal/config"
	"github.com/modcache/smc/internal/diag"
	"github.com/modcache/smc/internal/engine"
	"github.com/modcache/smc/internal/header"
)

// InterfaceExtension is the file extension of textual module interfaces
const InterfaceExtension = ".swiftinterface"

var (
	// ErrNotFound indicates no interface file exists at the expected
	// location. Expected and non-fatal: the caller tries its next
	// loader.
	ErrNotFound = errors.New("module interface not found")

	// ErrDefer indicates a plausibly valid precompiled binary exists
	// and policy prefers it; the caller's generic binary loader should
	// take over.
	ErrDefer = errors.New("precompiled module preferred")

	// ErrBuildFailed indicates the build attempt failed; diagnostics
	// have already been emitted.
	ErrBuildFailed = errors.New("failed to build module from interface")
)

// Loader converts textual interfaces into cached binary modules
type Loader struct {
	FS     afero.Fs
	Config *config.Build
	Engine engine.Engine
	Diags  diag.Sink

	// Tracker, if set, receives every dependency path visited during
	// staleness checks and builds
	Tracker cache.DependencyTracker

	// SupportedVersion is the interface format version this loader
	// accepts (same major). Zero value means header.FormatVersion.
	SupportedVersion header.Version
}

// New creates a loader over fs with the given ambient configuration
func New(fs afero.Fs, cfg *config.Build, eng engine.Engine, sink diag.Sink) *Loader {
	return &Loader{
		FS:               fs,
		Config:           cfg,
		Engine:           eng,
		Diags:            sink,
		SupportedVersion: header.FormatVersion,
	}
}

// OpenModule resolves the module name inside dir, where filename is
// the binary module file the caller was originally looking for. It
// returns the path of a valid binary artifact to hand to the generic
// module loader.
//
// Outcomes: a path on success; ErrNotFound if no interface exists
// here; ErrDefer if an adjacent precompiled binary should be loaded
// instead; any other error is a hard failure with diagnostics already
// emitted.
func (l *Loader) OpenModule(name, dir, filename string) (string, error) {
	adjacentBinary := filepath.Join(dir, filename)
	interfacePath := strings.TrimSuffix(adjacentBinary, filepath.Ext(adjacentBinary)) + InterfaceExtension

	exists, err := afero.Exists(l.FS, interfacePath)
	if err != nil || !exists {
		return "", ErrNotFound
	}

	// An adjacent binary that validates (or exists but cannot even be
	// read) wins over rebuilding from the interface when the load mode
	// prefers binaries. A readable binary that fails validation does
	// not: the interface build proceeds.
	if l.Config.PreferBinary && artifact.LooksValidOrUnreadable(l.FS, adjacentBinary) {
		return "", ErrDefer
	}

	// The sub-configuration for a potential build, derived from the
	// ambient configuration before the interface's own flags apply.
	// The cache key is computed at this point: it covers identity,
	// while content changes are caught by the staleness check.
	subCfg := l.Config.Clone()
	subCfg.ModuleName = name

	key := cache.Key(subCfg.CompilerVersion, interfacePath, subCfg.Hash())
	outPath := cache.OutputPath(subCfg.CacheDir, name, key)

	upToDate, err := cache.UpToDate(l.FS, outPath, name, l.Tracker)
	if err != nil {
		diag.Errorf(l.Diags, outPath, "%v", err)
		return "", err
	}

	if !upToDate {
		if err := l.buildFromInterface(subCfg, interfacePath, outPath); err != nil {
			return "", fmt.Errorf("%w: %v", ErrBuildFailed, err)
		}
	}

	return outPath, nil
}

// BuildInterface builds one interface file directly to outPath,
// bypassing the cache lookup. No ledger flattening happens since no
// cache directory is involved.
func (l *Loader) BuildInterface(name, interfacePath, outPath string) error {
	cfg := l.Config.Clone()
	cfg.ModuleName = name
	cfg.CacheDir = ""

	return l.buildFromInterface(cfg, interfacePath, outPath)
}

func (l *Loader) supportedVersion() header.Version {
	if l.SupportedVersion == (header.Version{}) {
		return header.FormatVersion
	}

	return l.SupportedVersion
}
