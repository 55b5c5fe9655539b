// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"socialstudio/internal/session"
)

// newTestSession creates a session.Data value suitable for testing.
func newTestSession(privileged, twoFADone bool) *session.Data {
	return &session.Data{
		AccountID:  uuid.New(),
		Email:      "test@socialstudio.local",
		Privileged: privileged,
		TwoFADone:  twoFADone,
	}
}

// ctxWithSession returns a context carrying the given session data using
// the same context key the middleware uses. This allows tests to simulate
// the state after LoadSession has run without needing a real Valkey store.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := newTestSession(true, true)
		got := SessionFromCtx(ctxWithSession(context.Background(), sess))
		if got == nil {
			t.Fatal("expected non-nil session")
		}
		if got.Email != sess.Email || !got.Privileged {
			t.Errorf("session mismatch: %+v", got)
		}
	})

	t.Run("returns nil when absent", func(t *testing.T) {
		if got := SessionFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("rejects unauthenticated", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		RequireAuth(h).ServeHTTP(rec, httptest.NewRequest("GET", "/api/posts", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if *called {
			t.Error("handler should not run")
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
	})

	t.Run("passes authenticated", func(t *testing.T) {
		h, called := okHandler()
		r := httptest.NewRequest("GET", "/api/posts", nil)
		r = r.WithContext(ctxWithSession(r.Context(), newTestSession(false, true)))

		rec := httptest.NewRecorder()
		RequireAuth(h).ServeHTTP(rec, r)

		if rec.Code != http.StatusOK || !*called {
			t.Errorf("status = %d, called = %v", rec.Code, *called)
		}
	})
}

func TestRequire2FA(t *testing.T) {
	t.Run("rejects incomplete 2FA", func(t *testing.T) {
		h, called := okHandler()
		r := httptest.NewRequest("GET", "/api/posts", nil)
		r = r.WithContext(ctxWithSession(r.Context(), newTestSession(false, false)))

		rec := httptest.NewRecorder()
		Require2FA(h).ServeHTTP(rec, r)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
		if *called {
			t.Error("handler should not run")
		}
	})

	t.Run("passes completed 2FA", func(t *testing.T) {
		h, called := okHandler()
		r := httptest.NewRequest("GET", "/api/posts", nil)
		r = r.WithContext(ctxWithSession(r.Context(), newTestSession(false, true)))

		rec := httptest.NewRecorder()
		Require2FA(h).ServeHTTP(rec, r)

		if rec.Code != http.StatusOK || !*called {
			t.Errorf("status = %d, called = %v", rec.Code, *called)
		}
	})
}

func TestRequirePrivileged(t *testing.T) {
	cases := []struct {
		name       string
		sess       *session.Data
		wantStatus int
	}{
		{"no session", nil, http.StatusForbidden},
		{"regular account", newTestSession(false, true), http.StatusForbidden},
		{"privileged account", newTestSession(true, true), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := okHandler()
			r := httptest.NewRequest("GET", "/api/admin", nil)
			if tc.sess != nil {
				r = r.WithContext(ctxWithSession(r.Context(), tc.sess))
			}

			rec := httptest.NewRecorder()
			RequirePrivileged(h).ServeHTTP(rec, r)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
