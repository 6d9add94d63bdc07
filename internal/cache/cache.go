// Package cache decides whether a previously compiled module artifact
// can be reused for a textual interface, and names the slot a fresh
// build is written to.
//
// There is no index: a cache entry is a single artifact file named
// <moduleName>-<key>.swiftmodule inside the cache root, and its
// validity is determined purely by opening it and checking the
// dependency ledger embedded in it against live file content. The key
// deliberately covers identity (toolchain version, interface path,
// configuration) but not content: editing an interface invalidates
// and reuses its existing slot via the staleness check instead of
// leaking a new entry per edit.
package cache

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/modcache/smc/internal/artifact"
)

// DependencyTracker receives every dependency path the cache visits,
// so the enclosing compilation session learns what it transitively
// depends on. Reporting happens whether or not the artifact turns out
// to be stale.
type DependencyTracker interface {
	AddDependency(path string)
}

// Stats returns the number of artifacts in the cache root and their
// total size in bytes
func Stats(fs afero.Fs, cacheDir string) (int, int64, error) {
	var count int
	var totalSize int64

	err := afero.Walk(fs, cacheDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if !info.IsDir() && strings.HasSuffix(path, artifact.Extension) {
			count++
			totalSize += info.Size()
		}

		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return 0, 0, err
	}

	return count, totalSize, nil
}

// Clear removes all cached artifacts from the cache root
func Clear(fs afero.Fs, cacheDir string) error {
	entries, err := afero.ReadDir(fs, cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), artifact.Extension) {
			continue
		}

		if err := fs.Remove(filepath.Join(cacheDir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}
