// Package cache provides pluggable artifact caching for generated
// benchmark instances. Encoding a large instance means enumerating every
// perfect matching of its graph, so re-running a generation with the same
// parameters is worth avoiding.
//
// Backends: FileCache for CLI usage, RedisCache for shared deployments,
// NullCache to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache stores generated artifacts keyed by instance parameters.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys from generation inputs.
type Keyer interface {
	// InstanceKey generates a key for a generated instance: the problem
	// family plus its full parameter set. Parameter sets must be
	// JSON-marshalable and deterministic.
	InstanceKey(family string, params interface{}) string

	// ArtifactKey generates a key for a named artifact of an instance,
	// such as an ordering file derived from the same inputs.
	ArtifactKey(instanceKey, artifact string) string
}

// DefaultKeyer hashes inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// InstanceKey generates a key of the form "instance:<family>:<hash>".
func (k *DefaultKeyer) InstanceKey(family string, params interface{}) string {
	return hashKey("instance:"+family, params)
}

// ArtifactKey generates a key of the form "<instanceKey>:<artifact>".
func (k *DefaultKeyer) ArtifactKey(instanceKey, artifact string) string {
	return instanceKey + ":" + artifact
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
