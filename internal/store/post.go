// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"socialstudio/internal/models"
)

// PostStore handles planner post persistence.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, account_id, platform, date, content, hashtags, status, media_source,
	image_url, video_url, variant_history, variant_index, format, ai_prompt, generation_debug,
	created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.SocialPost, error) {
	p := &models.SocialPost{}
	var hashtags, history, debug []byte
	err := row.Scan(
		&p.ID, &p.AccountID, &p.Platform, &p.Date, &p.Content, &hashtags,
		&p.Status, &p.MediaSource, &p.ImageURL, &p.VideoURL, &history,
		&p.VariantIndex, &p.Format, &p.AIPrompt, &debug,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Hashtags = scanList(hashtags)
	p.VariantHistory = scanList(history)
	if len(debug) > 0 {
		var d models.GenerationDebug
		if err := json.Unmarshal(debug, &d); err == nil {
			p.Debug = &d
		}
	}
	return p, nil
}

func debugJSON(d *models.GenerationDebug) any {
	if d == nil {
		return nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil
	}
	return b
}

// FindByID retrieves a post by UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.SocialPost, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT `+postColumns+` FROM posts WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// ListByAccount returns the account's posts scheduled in [from, to),
// ordered by date. Zero bounds mean no bound on that side.
func (s *PostStore) ListByAccount(accountID uuid.UUID, from, to time.Time) ([]models.SocialPost, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE account_id = $1`
	args := []any{accountID}
	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(" AND date < $%d", len(args))
	}
	query += " ORDER BY date ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.SocialPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// Create inserts a post and fills in the generated fields on the given struct.
func (s *PostStore) Create(p *models.SocialPost) error {
	created, err := scanPost(s.db.QueryRow(`
		INSERT INTO posts (
			account_id, platform, date, content, hashtags, status, media_source,
			image_url, video_url, variant_history, variant_index, format,
			ai_prompt, generation_debug
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING `+postColumns+`
	`, p.AccountID, p.Platform, p.Date, p.Content, jsonList(p.Hashtags),
		p.Status, p.MediaSource, p.ImageURL, p.VideoURL,
		jsonList(p.VariantHistory), p.VariantIndex, p.Format, p.AIPrompt,
		debugJSON(p.Debug)))
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	*p = *created
	return nil
}

// CreateBatch inserts a whole generated plan in one transaction, so a
// mid-plan failure never leaves half a plan in the calendar.
func (s *PostStore) CreateBatch(posts []models.SocialPost) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	defer tx.Rollback()

	for i := range posts {
		p := &posts[i]
		err := tx.QueryRow(`
			INSERT INTO posts (
				account_id, platform, date, content, hashtags, status,
				media_source, format
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id, created_at, updated_at
		`, p.AccountID, p.Platform, p.Date, p.Content, jsonList(p.Hashtags),
			p.Status, p.MediaSource, p.Format,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create batch post %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Update saves changes to an existing post, including its media state,
// variant history and generation metadata.
func (s *PostStore) Update(p *models.SocialPost) error {
	updated, err := scanPost(s.db.QueryRow(`
		UPDATE posts SET
			platform = $1, date = $2, content = $3, hashtags = $4, status = $5,
			media_source = $6, image_url = $7, video_url = $8,
			variant_history = $9, variant_index = $10, format = $11,
			ai_prompt = $12, generation_debug = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING `+postColumns+`
	`, p.Platform, p.Date, p.Content, jsonList(p.Hashtags), p.Status,
		p.MediaSource, p.ImageURL, p.VideoURL, jsonList(p.VariantHistory),
		p.VariantIndex, p.Format, p.AIPrompt, debugJSON(p.Debug), p.ID))
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	*p = *updated
	return nil
}

// Delete removes a post.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
