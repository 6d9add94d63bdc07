package loader

// Tracker is an ordered, deduplicating dependency collector. The
// enclosing compilation session attaches one to learn every file its
// module loads transitively depended on.
type Tracker struct {
	paths []string
	seen  map[string]struct{}
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]struct{})}
}

// AddDependency records path once, preserving first-seen order
func (t *Tracker) AddDependency(path string) {
	if _, ok := t.seen[path]; ok {
		return
	}

	t.seen[path] = struct{}{}
	t.paths = append(t.paths, path)
}

// Dependencies returns the recorded paths in first-seen order
func (t *Tracker) Dependencies() []string {
	return t.paths
}
