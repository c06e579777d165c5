package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis or MongoDB backend without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RunKey generates a prefixed key for a generation result.
func (k *ScopedKeyer) RunKey(opts RunKeyOpts) string {
	return k.prefix + k.inner.RunKey(opts)
}

// GraphKey generates a prefixed key for a per-graph artifact.
func (k *ScopedKeyer) GraphKey(kind, graph string) string {
	return k.prefix + k.inner.GraphKey(kind, graph)
}
