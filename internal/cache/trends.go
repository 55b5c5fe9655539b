// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// trends.go provides a Valkey-backed cache of industry trends keyed per
// account. Trend lookups cost a model call, so the weekly strategy and
// the notification feed share one cached result instead of refetching.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"socialstudio/internal/strategy"
)

const (
	// trendKeyPrefix namespaces trend keys in Valkey.
	trendKeyPrefix = "trends:"

	// DefaultTrendTTL is how long fetched trends stay fresh.
	DefaultTrendTTL = 6 * time.Hour
)

// TrendCache stores the latest trend list per account in Valkey.
type TrendCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTrendCache creates a trend cache backed by the given Valkey client.
func NewTrendCache(client *redis.Client, ttl time.Duration) *TrendCache {
	if ttl == 0 {
		ttl = DefaultTrendTTL
	}
	return &TrendCache{client: client, ttl: ttl}
}

// Get retrieves cached trends for an account. Returns false on miss.
func (tc *TrendCache) Get(ctx context.Context, accountID uuid.UUID) ([]strategy.Trend, bool) {
	val, err := tc.client.Get(ctx, trendKeyPrefix+accountID.String()).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("trend cache get error", "account", accountID, "error", err)
		return nil, false
	}

	var trends []strategy.Trend
	if err := json.Unmarshal(val, &trends); err != nil {
		slog.Warn("trend cache decode error", "account", accountID, "error", err)
		return nil, false
	}
	return trends, true
}

// Set stores trends for an account with the configured TTL.
func (tc *TrendCache) Set(ctx context.Context, accountID uuid.UUID, trends []strategy.Trend) {
	payload, err := json.Marshal(trends)
	if err != nil {
		slog.Warn("trend cache encode error", "account", accountID, "error", err)
		return
	}
	if err := tc.client.Set(ctx, trendKeyPrefix+accountID.String(), payload, tc.ttl).Err(); err != nil {
		slog.Warn("trend cache set error", "account", accountID, "error", err)
	}
}

// Invalidate removes the cached trends for an account. Called when the
// brand profile's industry changes.
func (tc *TrendCache) Invalidate(ctx context.Context, accountID uuid.UUID) {
	if err := tc.client.Del(ctx, trendKeyPrefix+accountID.String()).Err(); err != nil {
		slog.Warn("trend cache invalidate error", "account", accountID, "error", err)
	}
}
