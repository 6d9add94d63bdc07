package cache

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/modcache/smc/internal/artifact"
	"github.com/modcache/smc/internal/fingerprint"
)

// UpToDate reports whether the artifact at path can be reused for the
// module named expectedName. A candidate that is absent, structurally
// invalid, or records any dependency whose live content no longer
// matches its (size, hash) triple is stale.
//
// A readable, valid artifact recording a different module name is not
// a staleness condition: the slot name includes the module name, so a
// name mismatch means a cache-path collision and is returned as an
// error.
//
// Every dependency path visited is reported to tracker before it is
// checked, regardless of the outcome.
func UpToDate(fs afero.Fs, path, expectedName string, tracker DependencyTracker) (bool, error) {
	mod, err := artifact.Read(fs, path)
	if err != nil {
		// Absent or invalid container: rebuild either way.
		return false, nil
	}

	if mod.Name != expectedName {
		return false, fmt.Errorf("cached module at %s declares name %q, expected %q", path, mod.Name, expectedName)
	}

	for _, dep := range mod.Dependencies {
		if tracker != nil {
			tracker.AddDependency(dep.Path)
		}

		fp, err := fingerprint.File(fs, dep.Path)
		if err != nil || !dep.Matches(fp) {
			return false, nil
		}
	}

	return true, nil
}
