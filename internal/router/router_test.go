// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"

	"socialstudio/internal/handlers"
	"socialstudio/internal/session"
)

// testRouter wires the router with empty handler groups and a session
// store pointing at nothing. Requests without a bearer token never touch
// the store, which is all these routing tests need.
func testRouter() http.Handler {
	sessions := session.NewStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))
	return New(sessions, Handlers{
		Auth:          &handlers.Auth{},
		Onboarding:    &handlers.Onboarding{},
		Planner:       &handlers.Planner{},
		Generation:    &handlers.Generation{},
		Strategy:      &handlers.Strategy{},
		Billing:       &handlers.Billing{},
		Notifications: &handlers.Notifications{},
		Media:         &handlers.Media{},
	})
}

func TestHealthEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("unexpected health body: %s", w.Body.String())
	}
}

func TestMetricsEndpointIsPublic(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAPIRequiresAuthentication(t *testing.T) {
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/posts"},
		{http.MethodGet, "/api/profile"},
		{http.MethodPost, "/api/posts/00000000-0000-0000-0000-000000000000/generate"},
		{http.MethodGet, "/api/trends"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodGet, "/api/billing/packs"},
		{http.MethodPost, "/api/billing/grant"},
		{http.MethodPost, "/api/auth/logout"},
	}
	r := testRouter()
	for _, p := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestRegisterIsReachableWithoutSession(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("not json"))
	testRouter().ServeHTTP(w, req)

	// The handler rejects the body, which proves the route is not behind auth.
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
