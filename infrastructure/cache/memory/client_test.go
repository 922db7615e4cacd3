// ABOUTME: Tests for the in-memory cache
// ABOUTME: Covers round-trips, expiry, deletion and context cancellation

package memory

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetAndGet(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("expected 'value', got %q", got)
	}
}

func TestMemoryCacheGetMissingKey(t *testing.T) {
	cache := NewMemoryCache(0)

	_, err := cache.Get(context.Background(), "missing")
	if err == nil {
		t.Error("expected error for missing key")
	}
}

func TestMemoryCacheReturnsCopy(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	cache.Set(ctx, "key", []byte("value"), time.Minute)
	got, _ := cache.Get(ctx, "key")
	got[0] = 'X'

	again, _ := cache.Get(ctx, "key")
	if string(again) != "value" {
		t.Error("cached bytes must not be mutable through returned slices")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	cache.Set(ctx, "key", []byte("value"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, err := cache.Get(ctx, "key"); err == nil {
		t.Error("expected expired entry to be gone")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	cache.Set(ctx, "key", []byte("value"), time.Minute)
	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := cache.Get(ctx, "key"); err == nil {
		t.Error("expected deleted key to be gone")
	}
}

func TestMemoryCacheDeleteMissingKey(t *testing.T) {
	cache := NewMemoryCache(0)

	if err := cache.Delete(context.Background(), "missing"); err != nil {
		t.Errorf("deleting a missing key should be a no-op, got %v", err)
	}
}

func TestMemoryCacheCancelledContext(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cache.Get(ctx, "key"); err == nil {
		t.Error("Get should respect context cancellation")
	}
	if err := cache.Set(ctx, "key", []byte("v"), time.Minute); err == nil {
		t.Error("Set should respect context cancellation")
	}
}
