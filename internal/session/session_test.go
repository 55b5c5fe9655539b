// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
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
		keys, _ := client.Keys(ctx, "session:*").Result()
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

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := TokenFromRequest(r); got != "" {
		t.Errorf("no header: got %q, want empty", got)
	}

	r.Header.Set("Authorization", "Bearer abc123")
	if got := TokenFromRequest(r); got != "abc123" {
		t.Errorf("got %q, want abc123", got)
	}

	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if got := TokenFromRequest(r); got != "" {
		t.Errorf("basic auth: got %q, want empty", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)
	ctx := context.Background()

	accountID := uuid.New()
	token, err := store.Create(ctx, &Data{
		AccountID:  accountID,
		Email:      "studio@example.com",
		Privileged: false,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != tokenLength*2 {
		t.Errorf("token length = %d, want %d", len(token), tokenLength*2)
	}

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	data, err := store.Get(ctx, r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data == nil {
		t.Fatal("expected session data")
	}
	if data.AccountID != accountID || data.Email != "studio@example.com" {
		t.Errorf("data mismatch: %+v", data)
	}
	if data.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	// Update marks 2FA complete.
	data.TwoFADone = true
	if err := store.Update(ctx, r, data); err != nil {
		t.Fatalf("Update: %v", err)
	}
	data, err = store.Get(ctx, r)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if !data.TwoFADone {
		t.Error("TwoFADone not persisted")
	}

	// Destroy removes the session.
	if err := store.Destroy(ctx, r); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	data, err = store.Get(ctx, r)
	if err != nil {
		t.Fatalf("Get after destroy: %v", err)
	}
	if data != nil {
		t.Error("expected nil data after destroy")
	}
}

func TestGetWithUnknownToken(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer deadbeef")

	data, err := store.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("expected nil data for unknown token")
	}
}

func TestGetWithoutToken(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	data, err := store.Get(context.Background(), httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("expected nil data without token")
	}
}
