// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"socialstudio/internal/middleware"
	"socialstudio/internal/models"
	"socialstudio/internal/store"
)

// Billing handles the credit pack catalog and purchases. Payment
// collection is the job of an external collaborator; this endpoint
// records the credits a completed purchase grants.
type Billing struct {
	accounts      *store.AccountStore
	notifications *store.NotificationStore
}

// NewBilling creates a new Billing handler group.
func NewBilling(accounts *store.AccountStore, notifications *store.NotificationStore) *Billing {
	return &Billing{accounts: accounts, notifications: notifications}
}

// Packs returns the purchasable credit pack catalog.
func (b *Billing) Packs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"packs": models.CreditPacks})
}

// Purchase credits the account with a pack's credits.
func (b *Billing) Purchase(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req struct {
		PackID string `json:"pack_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pack := models.FindCreditPack(req.PackID)
	if pack == nil {
		writeError(w, http.StatusNotFound, "unknown credit pack")
		return
	}

	balance, err := b.accounts.AddCredits(sess.AccountID, pack.Credits)
	if err != nil {
		slog.Error("credit purchase failed", "account_id", sess.AccountID, "pack", pack.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "purchase could not be completed")
		return
	}

	n := &models.Notification{
		AccountID: sess.AccountID,
		Type:      models.NotificationSystem,
		Title:     "Credits added",
		Message:   fmt.Sprintf("The %s pack added %d credits to your account.", pack.Name, pack.Credits),
	}
	if err := b.notifications.Create(n); err != nil {
		slog.Warn("notification create failed", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pack":    pack,
		"balance": balance,
	})
}

// Grant credits an arbitrary account. Privileged accounts only; used by
// studio operators to top up clients outside the pack catalog.
func (b *Billing) Grant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID uuid.UUID `json:"account_id"`
		Credits   int       `json:"credits"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Credits <= 0 || req.Credits > 100000 {
		writeError(w, http.StatusUnprocessableEntity, "credits must be between 1 and 100000")
		return
	}

	target, err := b.accounts.FindByID(req.AccountID)
	if err != nil {
		slog.Error("account lookup failed", "account_id", req.AccountID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if target == nil {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	balance, err := b.accounts.AddCredits(target.ID, req.Credits)
	if err != nil {
		slog.Error("credit grant failed", "account_id", target.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "grant could not be completed")
		return
	}

	n := &models.Notification{
		AccountID: target.ID,
		Type:      models.NotificationSystem,
		Title:     "Credits added",
		Message:   fmt.Sprintf("%d credits were added to your account.", req.Credits),
	}
	if err := b.notifications.Create(n); err != nil {
		slog.Warn("notification create failed", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"balance": balance})
}
