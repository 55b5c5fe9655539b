// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"socialstudio/internal/middleware"
	"socialstudio/internal/models"
	"socialstudio/internal/store"
)

// Notifications handles the in-app notification center.
type Notifications struct {
	notifications *store.NotificationStore
}

// NewNotifications creates a new Notifications handler group.
func NewNotifications(notifications *store.NotificationStore) *Notifications {
	return &Notifications{notifications: notifications}
}

// List returns the account's notifications, newest first. The limit
// query parameter caps the page size.
func (h *Notifications) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	items, err := h.notifications.ListByAccount(sess.AccountID, limit)
	if err != nil {
		slog.Error("list notifications failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	unread, err := h.notifications.UnreadCount(sess.AccountID)
	if err != nil {
		slog.Error("unread count failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": items,
		"unread":        unread,
	})
}

// MarkRead marks a single notification as read.
func (h *Notifications) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := h.notifications.MarkRead(id); err != nil {
		slog.Error("mark read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"read": true})
}

// MarkAllRead marks every notification of the account as read.
func (h *Notifications) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	if err := h.notifications.MarkAllRead(sess.AccountID); err != nil {
		slog.Error("mark all read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"read": true})
}
