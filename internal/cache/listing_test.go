// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "listing:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	client.Close()
}

func TestListingCacheGetSet(t *testing.T) {
	client := testValkeyClient(t)
	lc := NewListingCache(client, time.Minute)
	ctx := context.Background()

	key := SearchKey("cold rooms")
	if _, ok := lc.Get(ctx, key); ok {
		t.Fatal("expected miss on empty cache")
	}

	body := []byte(`{"companies":[]}`)
	lc.Set(ctx, key, body)

	got, ok := lc.Get(ctx, key)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(got) != string(body) {
		t.Errorf("body: got %q, want %q", got, body)
	}
}

func TestListingCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	lc := NewListingCache(client, time.Minute)
	ctx := context.Background()

	lc.Set(ctx, SearchKey("a"), []byte("1"))
	lc.Set(ctx, SearchKey("b"), []byte("2"))
	lc.Set(ctx, CategoriesKey(), []byte("3"))

	lc.InvalidateAll(ctx)

	for _, key := range []string{SearchKey("a"), SearchKey("b"), CategoriesKey()} {
		if _, ok := lc.Get(ctx, key); ok {
			t.Errorf("key %q survived InvalidateAll", key)
		}
	}
}

func TestListingCacheNilSafe(t *testing.T) {
	var lc *ListingCache
	ctx := context.Background()

	// A nil cache is a no-op, not a panic.
	lc.Set(ctx, "k", []byte("v"))
	lc.InvalidateAll(ctx)
	if _, ok := lc.Get(ctx, "k"); ok {
		t.Error("nil cache must always miss")
	}
}
