package cache

// ScopedKeyer wraps a Keyer with a prefix so separate benchmark suites
// sharing one backend get isolated namespaces.
//
// Example usage:
//
//	// Keys scoped to one suite run
//	suiteKeyer := NewScopedKeyer(NewDefaultKeyer(), "suite:sat2026:")
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

// InstanceKey generates a prefixed key for a generated instance.
func (k *ScopedKeyer) InstanceKey(family string, params interface{}) string {
	return k.prefix + k.inner.InstanceKey(family, params)
}

// ArtifactKey generates a prefixed key for an instance artifact. The
// instance key is assumed to carry the prefix already.
func (k *ScopedKeyer) ArtifactKey(instanceKey, artifact string) string {
	return k.inner.ArtifactKey(instanceKey, artifact)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
