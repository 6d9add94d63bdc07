package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modcache/smc/internal/artifact"
	"github.com/modcache/smc/internal/diag"
	"github.com/modcache/smc/internal/fingerprint"
	"github.com/modcache/smc/internal/ledger"
)

// collectDeps builds the dependency ledger for a fresh artifact: the
// interface file itself first, then every file the engine reported
// reading, then the flattened dependencies of any of those that are
// themselves cached binary modules. Flattening keeps each artifact's
// ledger a closed transitive view, so future staleness checks never
// chase nested modules.
//
// An unreadable dependency aborts the collection: a build whose
// inputs cannot be fingerprinted cannot be checked for staleness
// later.
func (l *Loader) collectDeps(interfacePath string, engineDeps []string, cacheDir string) (*ledger.Ledger, error) {
	led := ledger.New()

	// Iterative worklist with the ledger's seen-set doing
	// deduplication, so cache nesting depth never grows the stack.
	work := make([]string, 0, len(engineDeps)+1)
	work = append(work, interfacePath)
	work = append(work, engineDeps...)

	for i := 0; i < len(work); i++ {
		path := work[i]
		if led.Seen(path) {
			continue
		}

		fp, err := fingerprint.File(l.FS, path)
		if err != nil {
			diag.Errorf(l.Diags, interfacePath, "missing dependency %s of module interface: %v", path, err)
			return nil, err
		}

		led.Add(ledger.FileDependency{Path: path, Size: fp.Size, Hash: fp.Hash})

		if l.Tracker != nil {
			l.Tracker.AddDependency(path)
		}

		if cacheDir == "" || !isCachedModule(path, cacheDir) {
			continue
		}

		nested, err := artifact.Read(l.FS, path)
		if err != nil {
			diag.Errorf(l.Diags, interfacePath, "cannot extract dependencies from cached module %s: %v", path, err)
			return nil, fmt.Errorf("cannot extract dependencies from cached module %s: %w", path, err)
		}

		for _, sub := range nested.Dependencies {
			if !led.Seen(sub.Path) {
				work = append(work, sub.Path)
			}
		}
	}

	return led, nil
}

// isCachedModule reports whether path names a binary module artifact
// inside the cache directory
func isCachedModule(path, cacheDir string) bool {
	if !strings.HasSuffix(path, artifact.Extension) {
		return false
	}

	return strings.HasPrefix(path, filepath.Clean(cacheDir)+string(filepath.Separator))
}
