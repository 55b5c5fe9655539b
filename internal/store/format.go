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

// FormatStore handles content format persistence. Formats are the
// recurring categories the weekly strategy rotates through.
type FormatStore struct {
	db *sql.DB
}

// NewFormatStore creates a new FormatStore.
func NewFormatStore(db *sql.DB) *FormatStore {
	return &FormatStore{db: db}
}

// ListByAccount returns the account's content formats in creation order.
func (s *FormatStore) ListByAccount(accountID uuid.UUID) ([]models.ContentFormat, error) {
	rows, err := s.db.Query(`
		SELECT id, account_id, name, keyword, posts_per_week, color, created_at
		FROM content_formats WHERE account_id = $1 ORDER BY created_at ASC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list formats: %w", err)
	}
	defer rows.Close()

	var formats []models.ContentFormat
	for rows.Next() {
		var f models.ContentFormat
		if err := rows.Scan(&f.ID, &f.AccountID, &f.Name, &f.Keyword, &f.PostsPerWeek, &f.Color, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan format: %w", err)
		}
		formats = append(formats, f)
	}
	return formats, rows.Err()
}

// Create inserts a content format and fills in its generated fields.
func (s *FormatStore) Create(f *models.ContentFormat) error {
	err := s.db.QueryRow(`
		INSERT INTO content_formats (account_id, name, keyword, posts_per_week, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, f.AccountID, f.Name, f.Keyword, f.PostsPerWeek, f.Color).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("create format: %w", err)
	}
	return nil
}

// Delete removes a content format.
func (s *FormatStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM content_formats WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete format: %w", err)
	}
	return nil
}
