// Package ledger records the files a compiled module depended on when
// it was built. The ledger is embedded in the binary artifact and is
// the sole staleness oracle for future loads: no timestamps, only
// (path, size, hash) triples.
package ledger

import (
	"github.com/modcache/smc/internal/fingerprint"
)

// FileDependency is one recorded input of a build. Identity is the
// path; freshness requires size and hash to match live disk content.
type FileDependency struct {
	Path string `cbor:"path"`
	Size uint64 `cbor:"size"`
	Hash uint64 `cbor:"hash"`
}

// Matches reports whether fp is byte-identical to the recorded content
func (d FileDependency) Matches(fp fingerprint.Fingerprint) bool {
	return d.Size == fp.Size && d.Hash == fp.Hash
}

// Ledger is an ordered, path-deduplicated set of file dependencies.
// Insertion order is discovery order; the first occurrence of a path
// wins.
type Ledger struct {
	deps []FileDependency
	seen map[string]struct{}
}

// New returns an empty ledger
func New() *Ledger {
	return &Ledger{seen: make(map[string]struct{})}
}

// Add records dep unless its path has been seen before.
// Returns true if the dependency was added.
func (l *Ledger) Add(dep FileDependency) bool {
	if _, ok := l.seen[dep.Path]; ok {
		return false
	}

	l.seen[dep.Path] = struct{}{}
	l.deps = append(l.deps, dep)

	return true
}

// Seen reports whether path has already been recorded
func (l *Ledger) Seen(path string) bool {
	_, ok := l.seen[path]
	return ok
}

// Entries returns the recorded dependencies in insertion order
func (l *Ledger) Entries() []FileDependency {
	return l.deps
}

// Len returns the number of recorded dependencies
func (l *Ledger) Len() int {
	return len(l.deps)
}
