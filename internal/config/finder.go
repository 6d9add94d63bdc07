package config

import (
	"os"
	"path/filepath"
)

// localConfigName is the basename, minus extension, of a per-project
// configuration file
const localConfigName = ".smc"

// configExtensions lists the accepted configuration formats in lookup
// order; shared between the per-project finder and the global config
// directory lookup
var configExtensions = []string{"yml", "yaml", "json", "toml"}

// FindLocalConfig walks from dir toward the filesystem root and
// returns the first per-project configuration file on the way up, or
// "" when no ancestor carries one. The nearest file wins; files in
// higher directories are not merged.
func FindLocalConfig(dir string) string {
	for {
		for _, ext := range configExtensions {
			candidate := filepath.Join(dir, localConfigName+"."+ext)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}

		dir = parent
	}
}
