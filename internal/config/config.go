package config

import (
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/modcache/smc/internal/utils"
)

// Default configuration values
const (
	DefaultCompilerPath = "swift-frontend"
	DefaultTarget       = "arm64-apple-macos13.0"
	DefaultCacheDir     = ".smc-cache"
)

// Build holds the configuration for one build attempt. A Build is
// owned by a single attempt; the loader clones the ambient
// configuration before applying interface-embedded flags.
type Build struct {
	// Name of the module being built
	ModuleName string

	// Target triple (e.g. arm64-apple-macos13.0)
	TargetTriple string

	// SDK root passed to the frontend
	SDKPath string

	// Runtime resource directory
	ResourceDir string

	// Module import search paths
	ImportSearchPaths []string

	// Framework search paths
	FrameworkSearchPaths []string

	// Directory holding cached binary modules
	CacheDir string

	// Path to the frontend binary
	CompilerPath string

	// Toolchain version string, part of the cache key
	CompilerVersion string

	// Tolerate repeated partial failures (debugger/REPL sessions)
	DebuggerSupport bool

	// Suppress warnings from sub-compilations
	SuppressWarnings bool

	// Optimize the emitted module for speed
	OptimizeForSpeed bool

	// Enable verbose output
	Verbose bool

	// Suppress console output from the frontend
	Silent bool

	// Prefer an adjacent precompiled binary over rebuilding from the interface
	PreferBinary bool
}

// Load builds a Build configuration from viper state
func Load() (*Build, error) {
	cfg := &Build{
		TargetTriple:         viper.GetString("target"),
		SDKPath:              viper.GetString("sdk"),
		ResourceDir:          viper.GetString("resource_dir"),
		ImportSearchPaths:    viper.GetStringSlice("import_path"),
		FrameworkSearchPaths: viper.GetStringSlice("framework_path"),
		CacheDir:             viper.GetString("cache_dir"),
		CompilerPath:         viper.GetString("compiler_path"),
		CompilerVersion:      viper.GetString("compiler_version"),
		Verbose:              viper.GetBool("verbose"),
		Silent:               viper.GetBool("silent"),
		PreferBinary:         viper.GetBool("prefer_binary"),
		DebuggerSupport:      viper.GetBool("debugger_support"),
	}

	if cfg.CompilerPath == "" {
		cfg.CompilerPath = DefaultCompilerPath
	}

	if cfg.TargetTriple == "" {
		cfg.TargetTriple = DefaultTarget
	}

	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}

	if cfg.CompilerVersion == "" {
		cfg.CompilerVersion = resolveCompilerVersion(cfg.CompilerPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate resolves paths and checks required fields
func (c *Build) Validate() error {
	if !isValidTriple(c.TargetTriple) {
		return fmt.Errorf("invalid target triple: %s", c.TargetTriple)
	}

	if abs, err := filepath.Abs(c.CacheDir); err == nil {
		c.CacheDir = abs
	}

	for i, p := range c.ImportSearchPaths {
		if p != "" {
			abs, err := filepath.Abs(p)
			if err != nil {
				return fmt.Errorf("invalid import search path: %v", err)
			}

			c.ImportSearchPaths[i] = abs
		}
	}

	for i, p := range c.FrameworkSearchPaths {
		if p != "" {
			abs, err := filepath.Abs(p)
			if err != nil {
				return fmt.Errorf("invalid framework search path: %v", err)
			}

			c.FrameworkSearchPaths[i] = abs
		}
	}

	return nil
}

// Clone returns a deep copy for use by one build attempt
func (c *Build) Clone() *Build {
	out := *c
	out.ImportSearchPaths = append([]string(nil), c.ImportSearchPaths...)
	out.FrameworkSearchPaths = append([]string(nil), c.FrameworkSearchPaths...)

	return &out
}

// ApplyInterfaceArgs applies the argument vector embedded in an
// interface file onto the configuration. Flags the frontend accepts
// but this driver does not model are ignored.
func (c *Build) ApplyInterfaceArgs(args []string) error {
	fs := pflag.NewFlagSet("swift-module-flags", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)

	moduleName := fs.String("module-name", c.ModuleName, "")
	target := fs.String("target", c.TargetTriple, "")
	sdk := fs.String("sdk", c.SDKPath, "")
	resourceDir := fs.String("resource-dir", c.ResourceDir, "")
	importPaths := fs.StringArray("I", nil, "")
	frameworkPaths := fs.StringArray("F", nil, "")

	if err := fs.Parse(normalizeArgs(args)); err != nil {
		return fmt.Errorf("failed to parse interface flags: %w", err)
	}

	c.ModuleName = *moduleName
	c.TargetTriple = *target
	c.SDKPath = *sdk
	c.ResourceDir = *resourceDir
	c.ImportSearchPaths = append(c.ImportSearchPaths, *importPaths...)
	c.FrameworkSearchPaths = append(c.FrameworkSearchPaths, *frameworkPaths...)

	return nil
}

// Hash folds every configuration value that affects the semantics of
// a build into a 64-bit hash, for use in the cache key. Path lists
// are sorted so ordering differences do not split cache slots.
func (c *Build) Hash() uint64 {
	d := xxhash.New()

	writeField(d, c.TargetTriple)
	writeField(d, c.SDKPath)
	writeField(d, c.ResourceDir)

	for _, paths := range [][]string{c.ImportSearchPaths, c.FrameworkSearchPaths} {
		sorted := make([]string, len(paths))
		copy(sorted, paths)
		sort.Strings(sorted)
		writeField(d, strings.Join(sorted, "|"))
	}

	return d.Sum64()
}

func writeField(d *xxhash.Digest, s string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
	_, _ = d.Write(n[:])
	_, _ = d.WriteString(s)
}

// normalizeArgs rewrites the frontend's single-dash long flags
// ("-module-name") into the double-dash form pflag expects.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--") {
			a = "-" + a
		}

		out[i] = a
	}

	return out
}

func isValidTriple(target string) bool {
	return utils.ParseTriple(target) != nil
}
