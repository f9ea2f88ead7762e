package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several servers can
// share one Redis without seeing each other's entries.
//
//	keyer := cache.NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ResultKey(problemHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(problemHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(resultKey string, format string) string {
	return k.prefix + k.inner.ArtifactKey(resultKey, format)
}
