// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the social studio API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialstudio/internal/ai"
	"socialstudio/internal/brief"
	"socialstudio/internal/cache"
	"socialstudio/internal/config"
	"socialstudio/internal/database"
	"socialstudio/internal/generation"
	"socialstudio/internal/handlers"
	"socialstudio/internal/imaging"
	"socialstudio/internal/router"
	"socialstudio/internal/session"
	"socialstudio/internal/storage"
	"socialstudio/internal/store"
	"socialstudio/internal/strategy"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions + trend cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	sessionStore := session.NewStore(valkeyClient)
	trendCache := cache.NewTrendCache(valkeyClient, cache.DefaultTrendTTL)

	// libvips normalizes client image uploads.
	imaging.Startup(0)
	defer imaging.Shutdown()

	// Initialize data stores.
	accountStore := store.NewAccountStore(db)
	profileStore := store.NewProfileStore(db)
	postStore := store.NewPostStore(db)
	notificationStore := store.NewNotificationStore(db)
	formatStore := store.NewFormatStore(db)

	// Connect to S3-compatible object storage. Generated media is uploaded
	// before any credit is charged, so the studio does not run without it.
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient == nil {
		slog.Error("S3 storage is not configured — set S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY")
		os.Exit(1)
	}
	slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"gemini": {
			APIKey:     cfg.GeminiKey,
			Model:      cfg.GeminiModel,
			ImageModel: cfg.GeminiImageModel,
			VideoModel: cfg.GeminiVideoModel,
			BaseURL:    cfg.GeminiBaseURL,
		},
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// The generation pipeline: brief synthesis, rendering, sessions.
	synthesizer := brief.NewSynthesizer(aiRegistry)
	renderer := generation.NewRenderer(aiRegistry, storageClient, synthesizer,
		cfg.VideoPollInterval, cfg.VideoPollTimeout)
	manager := generation.NewManager(renderer)

	// Strategy: brand scan, content plans, trends.
	planner := strategy.NewPlanner(aiRegistry)
	scanner := strategy.NewScanner(aiRegistry)

	// Create handler groups with their dependencies.
	h := router.Handlers{
		Auth:          handlers.NewAuth(sessionStore, accountStore, profileStore),
		Onboarding:    handlers.NewOnboarding(profileStore, postStore, notificationStore, scanner, planner, trendCache),
		Planner:       handlers.NewPlanner(postStore, formatStore),
		Generation:    handlers.NewGeneration(manager, aiRegistry, accountStore, profileStore, postStore),
		Strategy:      handlers.NewStrategy(planner, trendCache, accountStore, profileStore, postStore, notificationStore),
		Billing:       handlers.NewBilling(accountStore, notificationStore),
		Notifications: handlers.NewNotifications(notificationStore),
		Media:         handlers.NewMedia(storageClient, postStore),
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, h)

	// Create the HTTP server. WriteTimeout must accommodate video
	// generation, which polls the provider until the configured timeout.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.VideoPollTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
