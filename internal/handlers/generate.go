// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"socialstudio/internal/ai"
	"socialstudio/internal/brief"
	"socialstudio/internal/credits"
	"socialstudio/internal/generation"
	"socialstudio/internal/metrics"
	"socialstudio/internal/middleware"
	"socialstudio/internal/models"
	"socialstudio/internal/store"
)

// Generation handles AI media runs: generate, retry, regenerate and
// status polling for a single post.
type Generation struct {
	manager  *generation.Manager
	registry *ai.Registry
	accounts *store.AccountStore
	profiles *store.ProfileStore
	posts    *store.PostStore
}

// NewGeneration creates a new Generation handler group.
func NewGeneration(manager *generation.Manager, registry *ai.Registry, accounts *store.AccountStore, profiles *store.ProfileStore, posts *store.PostStore) *Generation {
	return &Generation{
		manager:  manager,
		registry: registry,
		accounts: accounts,
		profiles: profiles,
		posts:    posts,
	}
}

type generateRequest struct {
	Kind            generation.Kind `json:"kind"`
	Mode            brief.Mode      `json:"mode"`
	EditInstruction string          `json:"edit_instruction"`
	Seed            int             `json:"seed"`
}

type generateResponse struct {
	Post    *models.SocialPost     `json:"post"`
	Debug   models.GenerationDebug `json:"debug"`
	Balance int                    `json:"balance"`
	Seed    int                    `json:"seed"`
}

// Generate starts a fresh run for the post with caller-chosen parameters.
func (g *Generation) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Kind.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "kind must be image or video")
		return
	}
	if req.Mode == "" {
		req.Mode = brief.ModePhoto
	}
	if !req.Mode.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "mode must be PHOTO or POSTER")
		return
	}
	if len(req.EditInstruction) > maxEditLen {
		writeError(w, http.StatusUnprocessableEntity, "edit instruction is too long")
		return
	}

	params := generation.Params{
		Kind:            req.Kind,
		Mode:            req.Mode,
		EditInstruction: strings.TrimSpace(req.EditInstruction),
		Seed:            req.Seed,
	}
	g.execute(w, r, func(ctx *runContext) (*generation.Outcome, error) {
		return g.manager.Generate(r.Context(), ctx.ledger, ctx.post, ctx.profile, params)
	}, string(params.Kind), params.EditInstruction)
}

// Retry reruns the last generation for the post with identical parameters.
func (g *Generation) Retry(w http.ResponseWriter, r *http.Request) {
	g.rerun(w, r, g.manager.Retry)
}

// Regenerate reruns the last generation with the seed advanced, asking
// the model for a different take on the same brief.
func (g *Generation) Regenerate(w http.ResponseWriter, r *http.Request) {
	g.rerun(w, r, g.manager.Regenerate)
}

// Status reports the phase of the post's current or most recent run.
func (g *Generation) Status(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	post, err := g.posts.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil || post.AccountID != sess.AccountID {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"phase": string(g.manager.Phase(id)),
	})
}

type rerunFunc func(ctx context.Context, ledger *credits.Ledger, post *models.SocialPost, profile *models.BrandProfile) (*generation.Outcome, error)

func (g *Generation) rerun(w http.ResponseWriter, r *http.Request, run rerunFunc) {
	g.execute(w, r, func(ctx *runContext) (*generation.Outcome, error) {
		return run(r.Context(), ctx.ledger, ctx.post, ctx.profile)
	}, "", "")
}

// runContext carries the loaded records one run operates on.
type runContext struct {
	account *models.Account
	profile *models.BrandProfile
	post    *models.SocialPost
	ledger  *credits.Ledger
}

// execute is the shared body of Generate, Retry and Regenerate: load
// and authorize the records, moderate the prompt inputs, run the
// pipeline, then persist the post and the new balance.
func (g *Generation) execute(w http.ResponseWriter, r *http.Request, run func(*runContext) (*generation.Outcome, error), kind, edit string) {
	sess := middleware.SessionFromCtx(r.Context())
	started := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	post, err := g.posts.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil || post.AccountID != sess.AccountID {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	profile, err := g.profiles.FindByAccount(sess.AccountID)
	if err != nil {
		slog.Error("profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if profile == nil {
		writeError(w, http.StatusConflict, "complete onboarding before generating media")
		return
	}
	account, err := g.accounts.FindByID(sess.AccountID)
	if err != nil || account == nil {
		slog.Error("account lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if kind == "" {
		if params, ok := g.manager.LastParams(post.ID); ok {
			kind = string(params.Kind)
		} else {
			kind = string(generation.KindImage)
		}
	}

	if !g.moderate(w, r, post, edit) {
		return
	}

	rc := &runContext{
		account: account,
		profile: profile,
		post:    post,
		ledger:  credits.NewLedger(account.Credits, account.Privileged),
	}
	outcome, err := run(rc)
	if err != nil {
		g.writeRunError(w, kind, started, err)
		return
	}

	if err := g.posts.Update(post); err != nil {
		slog.Error("post persist failed", "post_id", post.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "generated media could not be saved")
		return
	}
	// The ledger only pre-checks affordability; the persisted debit is an
	// atomic decrement so a parallel run for another post of the same
	// account cannot lose it to an overwrite.
	balance := outcome.Balance
	if !account.Privileged {
		cost := generation.Kind(kind).Cost()
		if persisted, err := g.accounts.DebitCredits(account.ID, cost); err != nil {
			slog.Error("balance persist failed", "account_id", account.ID, "error", err)
		} else {
			balance = persisted
		}
		metrics.CreditsSpent.WithLabelValues(kind).Add(float64(cost))
	}
	metrics.ObserveGeneration(kind, "ok", started)

	writeJSON(w, http.StatusOK, generateResponse{
		Post:    post,
		Debug:   outcome.Debug,
		Balance: balance,
		Seed:    outcome.Seed,
	})
}

// moderate runs the safety check over the texts that feed the prompt:
// the post copy plus the edit instruction (explicit for fresh runs, the
// remembered one for retries). Writes the rejection response itself when
// the content is flagged.
func (g *Generation) moderate(w http.ResponseWriter, r *http.Request, post *models.SocialPost, edit string) bool {
	if edit == "" {
		if params, ok := g.manager.LastParams(post.ID); ok {
			edit = params.EditInstruction
		}
	}
	text := post.Content
	if edit != "" {
		text += "\n" + edit
	}
	res, err := g.registry.CheckPrompt(r.Context(), text)
	if err != nil {
		// Moderation outages must not block paying users.
		slog.Warn("moderation check failed", "error", err)
		return true
	}
	if !res.Safe {
		metrics.ModerationBlocked.Inc()
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "content was flagged by moderation",
			"categories": res.Categories,
		})
		return false
	}
	return true
}

func (g *Generation) writeRunError(w http.ResponseWriter, kind string, started time.Time, err error) {
	switch {
	case errors.Is(err, generation.ErrQuotaExceeded):
		metrics.ObserveGeneration(kind, "quota", started)
		writeError(w, http.StatusPaymentRequired, "not enough credits for this generation")
	case errors.Is(err, generation.ErrGenerationInFlight):
		metrics.ObserveGeneration(kind, "busy", started)
		writeError(w, http.StatusConflict, "a generation is already running for this post")
	case errors.Is(err, generation.ErrGenerationTimedOut):
		metrics.ObserveGeneration(kind, "timeout", started)
		writeError(w, http.StatusGatewayTimeout, "video generation timed out, credits were not charged")
	case errors.Is(err, generation.ErrNoHistory):
		writeError(w, http.StatusConflict, "no previous generation to repeat")
	case errors.Is(err, ai.ErrAuthorizationRequired):
		metrics.ObserveGeneration(kind, "error", started)
		writeError(w, http.StatusBadGateway, "the AI provider rejected our credentials, contact support")
	default:
		metrics.ObserveGeneration(kind, "error", started)
		slog.Error("generation failed", "error", err)
		writeError(w, http.StatusBadGateway, "media generation failed, credits were not charged")
	}
}
