// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"socialstudio/internal/models"
)

// NotificationStore handles notification feed persistence.
type NotificationStore struct {
	db *sql.DB
}

// NewNotificationStore creates a new NotificationStore.
func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// ListByAccount returns the account's notifications, newest first.
func (s *NotificationStore) ListByAccount(accountID uuid.UUID, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, account_id, type, title, message, read, created_at
		FROM notifications WHERE account_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var ns []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.AccountID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		ns = append(ns, n)
	}
	return ns, rows.Err()
}

// Create inserts a notification and fills in its generated fields.
func (s *NotificationStore) Create(n *models.Notification) error {
	err := s.db.QueryRow(`
		INSERT INTO notifications (account_id, type, title, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, read, created_at
	`, n.AccountID, n.Type, n.Title, n.Message).Scan(&n.ID, &n.Read, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// MarkRead marks one notification as read.
func (s *NotificationStore) MarkRead(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every notification of the account as read.
func (s *NotificationStore) MarkAllRead(accountID uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE notifications SET read = TRUE WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationStore) UnreadCount(accountID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM notifications WHERE account_id = $1 AND read = FALSE
	`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return count, nil
}
