// Package fingerprint computes content identities for dependency
// tracking. The hash is xxHash64: fast, stable across platforms, and
// used for change detection only, never for security.
package fingerprint

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
)

// Fingerprint is the recorded identity of a file's content
type Fingerprint struct {
	Size uint64
	Hash uint64
}

// Of fingerprints a byte buffer
func Of(data []byte) Fingerprint {
	return Fingerprint{
		Size: uint64(len(data)),
		Hash: xxhash.Sum64(data),
	}
}

// File reads and fingerprints path on fs. A file that cannot be read
// is an error; callers treat it as a missing dependency.
func File(fs afero.Fs, path string) (Fingerprint, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Of(data), nil
}
