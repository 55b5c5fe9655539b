// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"socialstudio/internal/cache"
	"socialstudio/internal/credits"
	"socialstudio/internal/middleware"
	"socialstudio/internal/models"
	"socialstudio/internal/store"
	"socialstudio/internal/strategy"
)

// Strategy handles trend discovery and the weekly content plan.
type Strategy struct {
	planner       *strategy.Planner
	trendCache    *cache.TrendCache
	accounts      *store.AccountStore
	profiles      *store.ProfileStore
	posts         *store.PostStore
	notifications *store.NotificationStore
}

// NewStrategy creates a new Strategy handler group.
func NewStrategy(planner *strategy.Planner, trendCache *cache.TrendCache, accounts *store.AccountStore, profiles *store.ProfileStore, posts *store.PostStore, notifications *store.NotificationStore) *Strategy {
	return &Strategy{
		planner:       planner,
		trendCache:    trendCache,
		accounts:      accounts,
		profiles:      profiles,
		posts:         posts,
		notifications: notifications,
	}
}

// Trends returns industry trends for the account's brand, cached in
// Valkey so repeated dashboard loads do not burn AI calls.
func (s *Strategy) Trends(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	profile, ok := s.requireProfile(w, sess.AccountID)
	if !ok {
		return
	}

	if s.trendCache != nil {
		if cached, hit := s.trendCache.Get(r.Context(), sess.AccountID); hit {
			writeJSON(w, http.StatusOK, map[string]any{"trends": cached, "cached": true})
			return
		}
	}

	trends, err := s.planner.Trends(r.Context(), profile)
	if err != nil {
		slog.Error("trend discovery failed", "error", err)
		writeError(w, http.StatusBadGateway, "could not fetch trends right now")
		return
	}
	if s.trendCache != nil {
		s.trendCache.Set(r.Context(), sess.AccountID, trends)
	}
	writeJSON(w, http.StatusOK, map[string]any{"trends": trends, "cached": false})
}

type weeklyPlanRequest struct {
	Platforms []models.Platform `json:"platforms"`
	Start     time.Time         `json:"start"`
}

// WeeklyPlan generates seven days of trend-aware posts. The run costs
// credits, charged only after the plan is produced and saved.
func (s *Strategy) WeeklyPlan(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req weeklyPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	platforms := validPlatforms(req.Platforms)
	if len(platforms) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "at least one valid platform is required")
		return
	}
	start := req.Start
	if start.IsZero() {
		start = time.Now().AddDate(0, 0, 1)
	}

	profile, ok := s.requireProfile(w, sess.AccountID)
	if !ok {
		return
	}
	account, err := s.accounts.FindByID(sess.AccountID)
	if err != nil || account == nil {
		slog.Error("account lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	ledger := credits.NewLedger(account.Credits, account.Privileged)
	if !ledger.CanAfford(credits.CostWeeklyStrategy) {
		writeError(w, http.StatusPaymentRequired, "not enough credits for a weekly plan")
		return
	}

	var trends []strategy.Trend
	if s.trendCache != nil {
		trends, _ = s.trendCache.Get(r.Context(), sess.AccountID)
	}
	if len(trends) == 0 {
		if trends, err = s.planner.Trends(r.Context(), profile); err != nil {
			slog.Warn("trend discovery failed, planning without trends", "error", err)
			trends = nil
		} else if s.trendCache != nil {
			s.trendCache.Set(r.Context(), sess.AccountID, trends)
		}
	}

	plan, err := s.planner.WeeklyPlan(r.Context(), profile, platforms, start, trends)
	if err != nil {
		slog.Error("weekly plan failed", "error", err)
		writeError(w, http.StatusBadGateway, "plan generation failed, credits were not charged")
		return
	}
	if err := s.posts.CreateBatch(plan); err != nil {
		slog.Error("weekly plan persist failed", "error", err)
		writeError(w, http.StatusInternalServerError, "plan could not be saved, credits were not charged")
		return
	}

	balance := ledger.Debit(credits.CostWeeklyStrategy)
	if !account.Privileged {
		// Atomic decrement; a concurrent generation run for the same
		// account must not lose either debit.
		if persisted, err := s.accounts.DebitCredits(account.ID, credits.CostWeeklyStrategy); err != nil {
			slog.Error("balance persist failed", "account_id", account.ID, "error", err)
		} else {
			balance = persisted
		}
	}

	s.notify(sess.AccountID, models.NotificationInsight, "Weekly plan ready",
		fmt.Sprintf("%d new posts were added to your calendar.", len(plan)))
	for _, t := range trends {
		s.notify(sess.AccountID, models.NotificationTrend, t.Topic, t.Why)
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"posts":   plan,
		"trends":  trends,
		"balance": balance,
	})
}

func (s *Strategy) requireProfile(w http.ResponseWriter, accountID uuid.UUID) (*models.BrandProfile, bool) {
	profile, err := s.profiles.FindByAccount(accountID)
	if err != nil {
		slog.Error("profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	if profile == nil {
		writeError(w, http.StatusConflict, "complete onboarding first")
		return nil, false
	}
	return profile, true
}

func (s *Strategy) notify(accountID uuid.UUID, typ models.NotificationType, title, message string) {
	n := &models.Notification{AccountID: accountID, Type: typ, Title: title, Message: message}
	if err := s.notifications.Create(n); err != nil {
		slog.Warn("notification create failed", "error", err)
	}
}

// validPlatforms filters the request list down to known platforms,
// dropping duplicates.
func validPlatforms(in []models.Platform) []models.Platform {
	seen := map[models.Platform]bool{}
	var out []models.Platform
	for _, p := range in {
		if p.Valid() && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
