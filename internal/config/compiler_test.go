package config

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modcache/smc/internal/version"
)

func stubCompilerVersion(t *testing.T, fn func(string) ([]byte, error)) {
	t.Helper()

	orig := compilerVersionOutput
	compilerVersionOutput = fn

	compilerVersionMu.Lock()
	compilerVersionCache = map[string]string{}
	compilerVersionMu.Unlock()

	t.Cleanup(func() {
		compilerVersionOutput = orig

		compilerVersionMu.Lock()
		compilerVersionCache = map[string]string{}
		compilerVersionMu.Unlock()
	})
}

func TestLoad_QueriesCompilerVersion(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	stubCompilerVersion(t, func(path string) ([]byte, error) {
		return []byte("Apple Swift version 5.9 (swiftlang-5.9.0)\nTarget: arm64-apple-macos13.0\n"), nil
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Apple Swift version 5.9 (swiftlang-5.9.0)", cfg.CompilerVersion)
}

func TestLoad_CompilerVersionFallback(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	stubCompilerVersion(t, func(path string) ([]byte, error) {
		return nil, errors.New("executable file not found")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, version.Version, cfg.CompilerVersion)
	assert.NotEmpty(t, cfg.CompilerVersion, "the key component must never be empty, or toolchain upgrades reuse stale slots")
}

func TestLoad_ExplicitCompilerVersionSkipsProbe(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("compiler_version", "custom 1.2.3")

	probes := 0
	stubCompilerVersion(t, func(path string) ([]byte, error) {
		probes++
		return []byte("ignored"), nil
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "custom 1.2.3", cfg.CompilerVersion)
	assert.Zero(t, probes)
}

func TestResolveCompilerVersion_CachedPerPath(t *testing.T) {
	probes := 0
	stubCompilerVersion(t, func(path string) ([]byte, error) {
		probes++
		return []byte("version for " + path), nil
	})

	assert.Equal(t, "version for /a", resolveCompilerVersion("/a"))
	assert.Equal(t, "version for /a", resolveCompilerVersion("/a"))
	assert.Equal(t, "version for /b", resolveCompilerVersion("/b"))
	assert.Equal(t, 2, probes)
}
