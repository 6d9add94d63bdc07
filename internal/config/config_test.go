package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyInterfaceArgs(t *testing.T) {
	cfg := &Build{
		ModuleName:   "Foo",
		TargetTriple: "arm64-apple-macos13.0",
	}

	err := cfg.ApplyInterfaceArgs([]string{
		"-module-name", "Foo",
		"-target", "x86_64-apple-macos12.0",
		"-sdk", "/sdk/MacOSX.sdk",
		"-I", "/imports/a",
		"-I", "/imports/b",
		"-F", "/frameworks",
	})
	require.NoError(t, err)

	assert.Equal(t, "Foo", cfg.ModuleName)
	assert.Equal(t, "x86_64-apple-macos12.0", cfg.TargetTriple)
	assert.Equal(t, "/sdk/MacOSX.sdk", cfg.SDKPath)
	assert.Equal(t, []string{"/imports/a", "/imports/b"}, cfg.ImportSearchPaths)
	assert.Equal(t, []string{"/frameworks"}, cfg.FrameworkSearchPaths)
}

func TestApplyInterfaceArgs_RenamesModule(t *testing.T) {
	cfg := &Build{ModuleName: "Foo"}

	err := cfg.ApplyInterfaceArgs([]string{"-module-name", "Bar"})
	require.NoError(t, err)
	assert.Equal(t, "Bar", cfg.ModuleName, "embedded flags may change the module name; the invoker gates it")
}

func TestApplyInterfaceArgs_IgnoresUnknownFlags(t *testing.T) {
	cfg := &Build{ModuleName: "Foo"}

	err := cfg.ApplyInterfaceArgs([]string{
		"-enable-library-evolution",
		"-swift-version", "5",
		"-module-name", "Foo",
	})
	require.NoError(t, err)
	assert.Equal(t, "Foo", cfg.ModuleName)
}

func TestHash_Determinism(t *testing.T) {
	cfg := &Build{
		TargetTriple:      "arm64-apple-macos13.0",
		SDKPath:           "/sdk",
		ImportSearchPaths: []string{"/a", "/b"},
	}

	assert.Equal(t, cfg.Hash(), cfg.Hash())

	// Search-path order must not split cache slots.
	reordered := cfg.Clone()
	reordered.ImportSearchPaths = []string{"/b", "/a"}
	assert.Equal(t, cfg.Hash(), reordered.Hash())
}

func TestHash_SensitiveToConfiguration(t *testing.T) {
	base := &Build{TargetTriple: "arm64-apple-macos13.0", SDKPath: "/sdk"}

	otherTarget := base.Clone()
	otherTarget.TargetTriple = "x86_64-apple-macos13.0"
	assert.NotEqual(t, base.Hash(), otherTarget.Hash())

	otherSDK := base.Clone()
	otherSDK.SDKPath = "/other-sdk"
	assert.NotEqual(t, base.Hash(), otherSDK.Hash())

	withImports := base.Clone()
	withImports.ImportSearchPaths = []string{"/imports"}
	assert.NotEqual(t, base.Hash(), withImports.Hash())
}

func TestHash_FieldBoundaries(t *testing.T) {
	// "ab" + "c" must hash differently from "a" + "bc".
	a := &Build{TargetTriple: "t-v-o", SDKPath: "ab", ResourceDir: "c"}
	b := &Build{TargetTriple: "t-v-o", SDKPath: "a", ResourceDir: "bc"}
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestClone_Isolation(t *testing.T) {
	cfg := &Build{
		ModuleName:        "Foo",
		TargetTriple:      "arm64-apple-macos13.0",
		ImportSearchPaths: []string{"/a"},
	}

	clone := cfg.Clone()
	clone.ModuleName = "Bar"
	clone.ImportSearchPaths = append(clone.ImportSearchPaths, "/b")

	assert.Equal(t, "Foo", cfg.ModuleName)
	assert.Equal(t, []string{"/a"}, cfg.ImportSearchPaths)
}

func TestValidate_RejectsBadTriple(t *testing.T) {
	cfg := &Build{TargetTriple: "arm64-apple"} // missing the OS component
	assert.Error(t, cfg.Validate())

	cfg = &Build{TargetTriple: "arm64-apple-macos13.0", CacheDir: "cache"}
	require.NoError(t, cfg.Validate())
}
