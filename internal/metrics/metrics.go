// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics exposes Prometheus instrumentation for the generation
// pipeline. Registered on the default registry and served at /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GenerationsTotal counts generation runs by media kind and outcome.
	// Outcome is one of: ok, error, quota, timeout, busy.
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialstudio_generations_total",
		Help: "Generation runs by kind and outcome.",
	}, []string{"kind", "outcome"})

	// GenerationDuration observes wall time of completed runs.
	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "socialstudio_generation_duration_seconds",
		Help:    "Duration of generation runs.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	}, []string{"kind"})

	// CreditsSpent counts credits debited for successful runs.
	CreditsSpent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialstudio_credits_spent_total",
		Help: "Credits debited, by media kind.",
	}, []string{"kind"})

	// ModerationBlocked counts prompts rejected by the moderation check.
	ModerationBlocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialstudio_moderation_blocked_total",
		Help: "Prompts rejected by content moderation.",
	})
)

// ObserveGeneration records one finished run.
func ObserveGeneration(kind, outcome string, started time.Time) {
	GenerationsTotal.WithLabelValues(kind, outcome).Inc()
	if outcome == "ok" {
		GenerationDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
	}
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
