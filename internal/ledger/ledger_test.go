package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modcache/smc/internal/fingerprint"
)

func TestLedger_OrderAndDeduplication(t *testing.T) {
	l := New()

	assert.True(t, l.Add(FileDependency{Path: "/a", Size: 1, Hash: 10}))
	assert.True(t, l.Add(FileDependency{Path: "/b", Size: 2, Hash: 20}))

	// Duplicate path: dropped, first occurrence wins even with
	// different content recorded.
	assert.False(t, l.Add(FileDependency{Path: "/a", Size: 9, Hash: 99}))

	assert.True(t, l.Add(FileDependency{Path: "/c", Size: 3, Hash: 30}))

	entries := l.Entries()
	assert.Equal(t, []FileDependency{
		{Path: "/a", Size: 1, Hash: 10},
		{Path: "/b", Size: 2, Hash: 20},
		{Path: "/c", Size: 3, Hash: 30},
	}, entries)

	assert.True(t, l.Seen("/b"))
	assert.False(t, l.Seen("/d"))
	assert.Equal(t, 3, l.Len())
}

func TestFileDependency_Matches(t *testing.T) {
	dep := FileDependency{Path: "/a", Size: 4, Hash: 42}

	assert.True(t, dep.Matches(fingerprint.Fingerprint{Size: 4, Hash: 42}))
	assert.False(t, dep.Matches(fingerprint.Fingerprint{Size: 5, Hash: 42}), "size mismatch is stale")
	assert.False(t, dep.Matches(fingerprint.Fingerprint{Size: 4, Hash: 43}), "hash mismatch is stale")
}
