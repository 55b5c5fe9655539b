// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// studio API. Routes are grouped into a public auth surface and the
// authenticated API, each with its own middleware stack.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"socialstudio/internal/handlers"
	"socialstudio/internal/metrics"
	"socialstudio/internal/middleware"
	"socialstudio/internal/session"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth          *handlers.Auth
	Onboarding    *handlers.Onboarding
	Planner       *handlers.Planner
	Generation    *handlers.Generation
	Strategy      *handlers.Strategy
	Billing       *handlers.Billing
	Notifications *handlers.Notifications
	Media         *handlers.Media
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and metrics — no auth.
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoadSession(sessionStore))

		// Auth surface — rate limited, no session required.
		r.Group(func(r chi.Router) {
			limiter := middleware.NewRateLimiter(20, time.Minute)
			r.Use(limiter.Middleware)
			r.Post("/auth/register", h.Auth.Register)
			r.Post("/auth/login", h.Auth.Login)
		})

		// 2FA challenge — requires a session but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/auth/2fa/verify", h.Auth.TOTPVerify)
			r.Post("/auth/logout", h.Auth.Logout)
		})

		// Authenticated, 2FA-verified API.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			// Account
			r.Get("/auth/me", h.Auth.Me)
			r.Post("/auth/2fa/setup", h.Auth.TOTPSetup)
			r.Post("/auth/2fa/activate", h.Auth.TOTPActivate)

			// Onboarding and brand profile
			r.Post("/onboarding/scan", h.Onboarding.ScanWebsite)
			r.Post("/onboarding/profile", h.Onboarding.CreateProfile)
			r.Get("/profile", h.Onboarding.GetProfile)
			r.Put("/profile", h.Onboarding.UpdateProfile)

			// Planner
			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.Planner.ListPosts)
				r.Post("/", h.Planner.CreatePost)
				r.Get("/{id}", h.Planner.GetPost)
				r.Put("/{id}", h.Planner.UpdatePost)
				r.Delete("/{id}", h.Planner.DeletePost)

				// AI media pipeline
				r.Post("/{id}/generate", h.Generation.Generate)
				r.Post("/{id}/retry", h.Generation.Retry)
				r.Post("/{id}/regenerate", h.Generation.Regenerate)
				r.Get("/{id}/generation", h.Generation.Status)
				r.Post("/{id}/variant/next", h.Planner.NextVariant)
				r.Post("/{id}/variant/prev", h.Planner.PrevVariant)

				// Client media
				r.Post("/{id}/media", h.Media.Upload)
				r.Delete("/{id}/media", h.Media.Remove)
			})

			// Content formats
			r.Route("/formats", func(r chi.Router) {
				r.Get("/", h.Planner.ListFormats)
				r.Post("/", h.Planner.CreateFormat)
				r.Delete("/{id}", h.Planner.DeleteFormat)
			})

			// Strategy
			r.Get("/trends", h.Strategy.Trends)
			r.Post("/strategy/weekly", h.Strategy.WeeklyPlan)

			// Billing
			r.Get("/billing/packs", h.Billing.Packs)
			r.Post("/billing/purchase", h.Billing.Purchase)
			r.With(middleware.RequirePrivileged).Post("/billing/grant", h.Billing.Grant)

			// Notifications
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notifications.List)
				r.Post("/{id}/read", h.Notifications.MarkRead)
				r.Post("/read-all", h.Notifications.MarkAllRead)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
