// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes entries in the notification center.
type NotificationType string

const (
	NotificationInsight NotificationType = "insight"
	NotificationTrend   NotificationType = "trend"
	NotificationSystem  NotificationType = "system"
)

// Notification is an entry in an account's notification feed. Trend
// notifications are produced by the trend scanner; insight and system
// notifications by the application itself.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	AccountID uuid.UUID        `json:"account_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
