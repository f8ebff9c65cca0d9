package ariston

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMemoryCache_GetSet(t *testing.T) {
	cache := NewMemoryCache()

	// Test set and get
	cache.Set("key1", "value1", time.Hour)
	val, ok := cache.Get("key1")
	if !ok {
		t.Error("expected key1 to exist")
	}
	if val != "value1" {
		t.Errorf("expected value1, got %v", val)
	}

	// Test non-existent key
	_, ok = cache.Get("nonexistent")
	if ok {
		t.Error("expected nonexistent key to not exist")
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache()

	// Set with very short TTL
	cache.Set("expiring", "value", 50*time.Millisecond)

	// Should exist immediately
	val, ok := cache.Get("expiring")
	if !ok {
		t.Error("expected key to exist before expiration")
	}
	if val != "value" {
		t.Errorf("expected value, got %v", val)
	}

	// Wait for expiration
	time.Sleep(60 * time.Millisecond)

	// Should be gone now
	_, ok = cache.Get("expiring")
	if ok {
		t.Error("expected key to be expired")
	}
}

func TestMemoryCache_NoExpiry(t *testing.T) {
	cache := NewMemoryCache()

	// Set with zero TTL (no expiry)
	cache.Set("permanent", "value", 0)

	val, ok := cache.Get("permanent")
	if !ok {
		t.Error("expected permanent key to exist")
	}
	if val != "value" {
		t.Errorf("expected value, got %v", val)
	}

	// Set with negative TTL (also no expiry)
	cache.Set("permanent2", "value2", -1*time.Second)

	val, ok = cache.Get("permanent2")
	if !ok {
		t.Error("expected permanent2 key to exist")
	}
	if val != "value2" {
		t.Errorf("expected value2, got %v", val)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()

	cache.Set("key", "value", time.Hour)
	cache.Delete("key")

	_, ok := cache.Get("key")
	if ok {
		t.Error("expected deleted key to not exist")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := NewMemoryCache()

	cache.Set("key1", "value1", time.Hour)
	cache.Set("key2", "value2", time.Hour)
	cache.Set("key3", "value3", time.Hour)

	if cache.Size() != 3 {
		t.Errorf("expected size 3, got %d", cache.Size())
	}

	cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("expected size 0 after clear, got %d", cache.Size())
	}

	_, ok := cache.Get("key1")
	if ok {
		t.Error("expected cleared cache to be empty")
	}
}

func TestMemoryCache_Cleanup(t *testing.T) {
	cache := NewMemoryCache()

	cache.Set("fresh", "value", time.Hour)
	cache.Set("expiring1", "value1", 10*time.Millisecond)
	cache.Set("expiring2", "value2", 10*time.Millisecond)

	// Wait for expiration
	time.Sleep(20 * time.Millisecond)

	removed := cache.Cleanup()
	if removed != 2 {
		t.Errorf("expected 2 entries removed, got %d", removed)
	}

	if cache.Size() != 1 {
		t.Errorf("expected size 1 after cleanup, got %d", cache.Size())
	}

	// Fresh entry should still exist
	_, ok := cache.Get("fresh")
	if !ok {
		t.Error("expected fresh entry to still exist")
	}
}

func TestMemoryCache_Overwrite(t *testing.T) {
	cache := NewMemoryCache()

	cache.Set("key", "value1", time.Hour)
	cache.Set("key", "value2", time.Hour)

	val, ok := cache.Get("key")
	if !ok {
		t.Error("expected key to exist")
	}
	if val != "value2" {
		t.Errorf("expected value2, got %v", val)
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	done := make(chan bool)

	// Writer goroutine
	go func() {
		for i := 0; i < 1000; i++ {
			cache.Set("key", i, time.Hour)
		}
		done <- true
	}()

	// Reader goroutine
	go func() {
		for i := 0; i < 1000; i++ {
			cache.Get("key")
		}
		done <- true
	}()

	// Deleter goroutine
	go func() {
		for i := 0; i < 100; i++ {
			cache.Delete("key")
			time.Sleep(time.Millisecond)
		}
		done <- true
	}()

	// Wait for all goroutines
	<-done
	<-done
	<-done
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		resourceType string
		ids          []string
		expected     string
	}{
		{"features", []string{"gw1"}, "features:gw1"},
		{"features", []string{"gw1", "en-US"}, "features:gw1:en-US"},
		{"type", nil, "type"},
		{"type", []string{}, "type"},
	}

	for _, tt := range tests {
		result := cacheKey(tt.resourceType, tt.ids...)
		if result != tt.expected {
			t.Errorf("cacheKey(%s, %v) = %s, want %s", tt.resourceType, tt.ids, result, tt.expected)
		}
	}
}

func TestWithFeaturesCache(t *testing.T) {
	t.Run("nil cache gets a default", func(t *testing.T) {
		client, err := NewClient("user", "pass", WithFeaturesCache(nil, 0))
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		if client.featuresCache == nil {
			t.Error("expected a cache to be created")
		}
		if client.featuresTTL != DefaultFeaturesTTL {
			t.Errorf("TTL = %v, want %v", client.featuresTTL, DefaultFeaturesTTL)
		}
	})

	t.Run("custom TTL", func(t *testing.T) {
		client, err := NewClient("user", "pass", WithFeaturesCache(NewMemoryCache(), 30*time.Minute))
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		if client.featuresTTL != 30*time.Minute {
			t.Errorf("TTL = %v, want 30m", client.featuresTTL)
		}
	})
}

func TestGetDeviceFeaturesWithCache(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hasBoiler": true, "zones": [{"num": 1, "name": "Living room"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, WithFeaturesCache(NewMemoryCache(), time.Hour))

	ctx := context.Background()

	// First call should hit the server
	features1, err := client.GetDeviceFeaturesContext(ctx, "gw1")
	if err != nil {
		t.Fatalf("GetDeviceFeatures failed: %v", err)
	}
	if !features1.HasBoiler {
		t.Error("expected hasBoiler to be true")
	}
	if callCount != 1 {
		t.Errorf("expected 1 server call, got %d", callCount)
	}

	// Second call should use cache
	features2, err := client.GetDeviceFeaturesContext(ctx, "gw1")
	if err != nil {
		t.Fatalf("GetDeviceFeatures failed: %v", err)
	}
	if !features2.HasBoiler {
		t.Error("expected hasBoiler to be true")
	}
	if callCount != 1 {
		t.Errorf("expected still 1 server call (cached), got %d", callCount)
	}

	// A different gateway misses the cache
	if _, err := client.GetDeviceFeaturesContext(ctx, "gw2"); err != nil {
		t.Fatalf("GetDeviceFeatures failed: %v", err)
	}
	if callCount != 2 {
		t.Errorf("expected 2 server calls, got %d", callCount)
	}
}

func TestGetDeviceFeaturesWithoutCache(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hasBoiler": false}`))
	}))
	defer server.Close()

	// Client without cache
	client := newTestClient(t, server)

	ctx := context.Background()

	// Both calls should hit the server
	client.GetDeviceFeaturesContext(ctx, "gw1")
	client.GetDeviceFeaturesContext(ctx, "gw1")

	if callCount != 2 {
		t.Errorf("expected 2 server calls without cache, got %d", callCount)
	}
}

func TestInvalidateFeaturesCache(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hasBoiler": true}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, WithFeaturesCache(NewMemoryCache(), time.Hour))

	ctx := context.Background()

	// First call - should hit server
	client.GetDeviceFeaturesContext(ctx, "gw1")
	if callCount != 1 {
		t.Errorf("expected 1 server call, got %d", callCount)
	}

	// Second call - should use cache
	client.GetDeviceFeaturesContext(ctx, "gw1")
	if callCount != 1 {
		t.Errorf("expected still 1 server call after cache hit, got %d", callCount)
	}

	// Invalidate and fetch again - should hit server
	client.InvalidateFeaturesCache("gw1")
	client.GetDeviceFeaturesContext(ctx, "gw1")
	if callCount != 2 {
		t.Errorf("expected 2 server calls after invalidation, got %d", callCount)
	}
}

func TestGetCached_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "server error"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, WithFeaturesCache(NewMemoryCache(), time.Hour))

	// The error must propagate and nothing may be cached
	if _, err := client.GetDeviceFeaturesContext(context.Background(), "gw1"); err == nil {
		t.Error("expected error from server failure")
	}
	if _, ok := client.featuresCache.Get(cacheKey("features", "gw1")); ok {
		t.Error("failed fetch must not populate the cache")
	}
}
