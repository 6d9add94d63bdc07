package cache

import (
	"encoding/binary"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/modcache/smc/internal/artifact"
)

// Key derives the cache slot identifier for a prospective build from
// the toolchain version, the interface file's path, and the
// configuration hash. The combination is order-sensitive and the
// result is rendered base-36 for use as a filename component.
//
// The interface's content is deliberately not part of the key; content
// changes are caught by the staleness check so an edited interface
// rebuilds into the same slot.
func Key(compilerVersion, interfacePath string, configHash uint64) string {
	d := xxhash.New()

	writeComponent(d, compilerVersion)
	writeComponent(d, interfacePath)

	var h [8]byte
	binary.LittleEndian.PutUint64(h[:], configHash)
	_, _ = d.Write(h[:])

	return strconv.FormatUint(d.Sum64(), 36)
}

// OutputPath returns the artifact path for a module in the cache root
func OutputPath(cacheDir, moduleName, key string) string {
	return filepath.Join(cacheDir, moduleName+"-"+key+artifact.Extension)
}

func writeComponent(d *xxhash.Digest, s string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
	_, _ = d.Write(n[:])
	_, _ = d.WriteString(s)
}
