package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before any Set
	_, hit, err := c.Get(ctx, "instance:pigeon:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get should miss on empty cache")
	}

	// Roundtrip
	payload := []byte("p cnf 6 9\n")
	if err := c.Set(ctx, "instance:pigeon:abc", payload, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "instance:pigeon:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get should hit after Set")
	}
	if string(data) != string(payload) {
		t.Errorf("Get returned %q, want %q", data, payload)
	}

	// Zero TTL means no expiry
	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "forever"); !hit {
		t.Error("zero-TTL entry should not expire")
	}

	// Expired entries are misses
	if err := c.Set(ctx, "expired", []byte("x"), -time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "expired"); hit {
		t.Error("expired entry should be a miss")
	}

	// Delete removes, and deleting again is fine
	if err := c.Delete(ctx, "instance:pigeon:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "instance:pigeon:abc"); hit {
		t.Error("Get should miss after Delete")
	}
	if err := c.Delete(ctx, "instance:pigeon:abc"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Same inputs, same key
	p1 := map[string]int{"holes": 4, "seed": 42}
	if k.InstanceKey("pigeon", p1) != k.InstanceKey("pigeon", p1) {
		t.Error("InstanceKey should be deterministic")
	}

	// Different params produce different keys
	p2 := map[string]int{"holes": 5, "seed": 42}
	if k.InstanceKey("pigeon", p1) == k.InstanceKey("pigeon", p2) {
		t.Error("Different params should produce different keys")
	}

	// Different families produce different keys
	if k.InstanceKey("pigeon", p1) == k.InstanceKey("chessboard", p1) {
		t.Error("Different families should produce different keys")
	}

	// Instance keys carry the family for debuggability
	if !strings.HasPrefix(k.InstanceKey("pigeon", p1), "instance:pigeon:") {
		t.Errorf("InstanceKey unexpected: %s", k.InstanceKey("pigeon", p1))
	}

	// ArtifactKey appends the artifact name
	ak := k.ArtifactKey("instance:pigeon:abc", "order")
	if ak != "instance:pigeon:abc:order" {
		t.Errorf("ArtifactKey unexpected: %s", ak)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "suite:sat2026:")

	key := scoped.InstanceKey("pigeon", map[string]int{"holes": 4})
	if !strings.HasPrefix(key, "suite:sat2026:instance:pigeon:") {
		t.Errorf("ScopedKeyer InstanceKey should be prefixed: %s", key)
	}

	// The instance key already carries the prefix; ArtifactKey must not
	// add a second one.
	ak := scoped.ArtifactKey(key, "order")
	if ak != key+":order" {
		t.Errorf("ScopedKeyer ArtifactKey unexpected: %s", ak)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.InstanceKey("random", map[string]int{"nodes": 3})
	if !strings.HasPrefix(key, "prefix:instance:random:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	base := errors.New("connection refused")

	// Non-nil error is wrapped
	err := Retryable(base)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != base.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should unwrap to the base error")
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(base) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	permanent := errors.New("bad key")
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return permanent
	})
	if err != permanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	transient := errors.New("timeout")
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(transient)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("timeout"))
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
