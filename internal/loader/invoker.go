package loader

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/modcache/smc/internal/artifact"
	"github.com/modcache/smc/internal/config"
	"github.com/modcache/smc/internal/diag"
	"github.com/modcache/smc/internal/engine"
	"github.com/modcache/smc/internal/header"
)

// buildFromInterface performs one complete build attempt for one
// interface file, isolated so that a fatal fault inside the engine is
// observed as a build failure rather than terminating the process.
// Failure never leaves a partial artifact at outPath.
func (l *Loader) buildFromInterface(cfg *config.Build, interfacePath, outPath string) error {
	if cfg.CacheDir != "" {
		if err := l.FS.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	err := runIsolated(func() error {
		return l.buildAttempt(cfg, interfacePath, outPath)
	})

	var crash *engine.CrashError
	if errors.As(err, &crash) {
		diag.Errorf(l.Diags, interfacePath, "the build crashed: %s", crash.Reason)
	}

	return err
}

func (l *Loader) buildAttempt(cfg *config.Build, interfacePath, outPath string) error {
	data, err := afero.ReadFile(l.FS, interfacePath)
	if err != nil {
		diag.Errorf(l.Diags, interfacePath, "failed to open module interface: %v", err)
		return err
	}

	hdr, err := header.Parse(data)
	if err != nil {
		diag.Errorf(l.Diags, interfacePath, "%v", err)
		return err
	}

	// Same major version is compatible; minor differences are ignored.
	supported := l.supportedVersion()
	if !hdr.Version.SameMajor(supported) {
		diag.Errorf(l.Diags, interfacePath, "unsupported module interface version %s (supported: %s)", hdr.Version, supported)
		return fmt.Errorf("unsupported module interface version %s", hdr.Version)
	}

	expectedName := cfg.ModuleName
	if err := cfg.ApplyInterfaceArgs(hdr.Args); err != nil {
		diag.Errorf(l.Diags, interfacePath, "%v", err)
		return err
	}

	if cfg.ModuleName != expectedName {
		msg := fmt.Sprintf("module interface declares module name %q, expected %q", cfg.ModuleName, expectedName)
		if cfg.DebuggerSupport {
			// Debugger sessions tolerate repeated partial failures.
			diag.Warnf(l.Diags, interfacePath, "%s", msg)
		} else {
			diag.Errorf(l.Diags, interfacePath, "%s", msg)
		}

		return fmt.Errorf("module name mismatch: %s", msg)
	}

	// The sub-compilation always optimizes the emitted module and
	// keeps its warnings out of the enclosing session's output.
	cfg.SuppressWarnings = true
	cfg.OptimizeForSpeed = true

	out, err := l.Engine.Build(&engine.Invocation{
		Config:        cfg,
		InterfacePath: interfacePath,
	})
	if err != nil {
		var crash *engine.CrashError
		if !errors.As(err, &crash) {
			// The engine surfaced its own diagnostics; only the error
			// flag is observed here.
			diag.Errorf(l.Diags, interfacePath, "failed to build module from interface: %v", err)
		}

		return err
	}

	deps, err := l.collectDeps(interfacePath, out.Deps, cfg.CacheDir)
	if err != nil {
		return err
	}

	mod := &artifact.Module{
		Header: artifact.Header{
			Name:            cfg.ModuleName,
			ToolsVersion:    hdr.ToolsVersion,
			CompilerVersion: cfg.CompilerVersion,
			Dependencies:    deps.Entries(),
		},
		Payload: out.Payload,
	}

	if err := artifact.Write(l.FS, outPath, mod); err != nil {
		diag.Errorf(l.Diags, outPath, "failed to write module artifact: %v", err)
		return err
	}

	return nil
}
