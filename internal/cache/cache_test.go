// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"socialstudio/internal/strategy"
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
		keys, _ := client.Keys(ctx, "trends:*").Result()
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

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestTrendCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	tc := NewTrendCache(client, 1*time.Minute)

	ctx := context.Background()
	accountID := uuid.New()

	// Miss.
	if _, ok := tc.Get(ctx, accountID); ok {
		t.Error("expected cache miss")
	}

	trends := []strategy.Trend{
		{Topic: "sourdough revival", Why: "home bakers are back"},
		{Topic: "behind the counter", Why: "authenticity performs well"},
	}
	tc.Set(ctx, accountID, trends)

	got, ok := tc.Get(ctx, accountID)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[0].Topic != "sourdough revival" {
		t.Errorf("trends mismatch: %+v", got)
	}
}

func TestTrendCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	tc := NewTrendCache(client, 1*time.Minute)

	ctx := context.Background()
	accountID := uuid.New()

	tc.Set(ctx, accountID, []strategy.Trend{{Topic: "x", Why: "y"}})
	if _, ok := tc.Get(ctx, accountID); !ok {
		t.Fatal("expected cache hit before invalidation")
	}

	tc.Invalidate(ctx, accountID)

	if _, ok := tc.Get(ctx, accountID); ok {
		t.Error("expected cache miss after invalidation")
	}
}

func TestTrendCacheIsolatedPerAccount(t *testing.T) {
	client := testValkeyClient(t)
	tc := NewTrendCache(client, 1*time.Minute)

	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	tc.Set(ctx, a, []strategy.Trend{{Topic: "a-only", Why: "w"}})

	if _, ok := tc.Get(ctx, b); ok {
		t.Error("account b should not see account a's trends")
	}
}

func TestNewTrendCacheDefaultTTL(t *testing.T) {
	client := testValkeyClient(t)

	tc := NewTrendCache(client, 0)
	if tc.ttl != DefaultTrendTTL {
		t.Errorf("expected DefaultTrendTTL (%v), got %v", DefaultTrendTTL, tc.ttl)
	}
}
