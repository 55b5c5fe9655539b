// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"socialstudio/internal/cache"
	"socialstudio/internal/middleware"
	"socialstudio/internal/models"
	"socialstudio/internal/store"
	"socialstudio/internal/strategy"
)

// Onboarding handles brand setup: the website scan, profile creation
// with the initial content plan, and later profile edits from settings.
type Onboarding struct {
	profiles      *store.ProfileStore
	posts         *store.PostStore
	notifications *store.NotificationStore
	scanner       *strategy.Scanner
	planner       *strategy.Planner
	trendCache    *cache.TrendCache
}

// NewOnboarding creates a new Onboarding handler group.
func NewOnboarding(profiles *store.ProfileStore, posts *store.PostStore, notifications *store.NotificationStore, scanner *strategy.Scanner, planner *strategy.Planner, trendCache *cache.TrendCache) *Onboarding {
	return &Onboarding{
		profiles:      profiles,
		posts:         posts,
		notifications: notifications,
		scanner:       scanner,
		planner:       planner,
		trendCache:    trendCache,
	}
}

// ScanWebsite extracts brand fields from the given website so the
// onboarding form arrives pre-filled.
func (o *Onboarding) ScanWebsite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Website string `json:"website"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Website == "" {
		writeError(w, http.StatusBadRequest, "website is required")
		return
	}

	res, err := o.scanner.Scan(r.Context(), req.Website)
	if err != nil {
		slog.Warn("brand scan failed", "website", req.Website, "error", err)
		writeError(w, http.StatusBadGateway, "could not analyze the website")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type createProfileRequest struct {
	Profile   models.BrandProfile `json:"profile"`
	Platforms []models.Platform   `json:"platforms"`
	PlanDays  int                 `json:"plan_days"`
}

// CreateProfile completes onboarding: it persists the brand profile and
// generates the initial content plan. Plan generation failures do not
// roll the profile back; the calendar can be filled later.
func (o *Onboarding) CreateProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req createProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Profile.AccountID = sess.AccountID
	if msg := validateProfile(&req.Profile); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	existing, err := o.profiles.FindByAccount(sess.AccountID)
	if err != nil {
		slog.Error("profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "onboarding already completed")
		return
	}

	if err := o.profiles.Create(&req.Profile); err != nil {
		slog.Error("profile create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	days := req.PlanDays
	if days <= 0 || days > 31 {
		days = 14
	}
	planGenerated := false
	posts, err := o.planner.InitialPlan(r.Context(), &req.Profile, req.Platforms, time.Now(), days)
	if err != nil {
		slog.Warn("initial plan generation failed", "error", err)
	} else if err := o.posts.CreateBatch(posts); err != nil {
		slog.Error("initial plan save failed", "error", err)
	} else {
		planGenerated = true
		o.notify(sess.AccountID, models.NotificationInsight,
			"Your content plan is ready",
			"We drafted your first two weeks of posts. Review them in the planner.")
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"profile":        req.Profile,
		"plan_generated": planGenerated,
	})
}

// GetProfile returns the account's brand profile.
func (o *Onboarding) GetProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	profile, err := o.profiles.FindByAccount(sess.AccountID)
	if err != nil {
		slog.Error("profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "onboarding not completed")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile saves brand settings edits. Changing the industry
// invalidates the cached trends, which are industry-specific.
func (o *Onboarding) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	current, err := o.profiles.FindByAccount(sess.AccountID)
	if err != nil {
		slog.Error("profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if current == nil {
		writeError(w, http.StatusNotFound, "onboarding not completed")
		return
	}

	var updated models.BrandProfile
	if err := decodeJSON(r, &updated); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated.ID = current.ID
	updated.AccountID = sess.AccountID
	if msg := validateProfile(&updated); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	industryChanged := updated.Industry != current.Industry
	if err := o.profiles.Update(&updated); err != nil {
		slog.Error("profile update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if industryChanged && o.trendCache != nil {
		o.trendCache.Invalidate(r.Context(), sess.AccountID)
	}

	writeJSON(w, http.StatusOK, updated)
}

func (o *Onboarding) notify(accountID uuid.UUID, typ models.NotificationType, title, message string) {
	n := &models.Notification{AccountID: accountID, Type: typ, Title: title, Message: message}
	if err := o.notifications.Create(n); err != nil {
		slog.Warn("notification create failed", "error", err)
	}
}
