// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"socialstudio/internal/generation"
	"socialstudio/internal/middleware"
	"socialstudio/internal/models"
	"socialstudio/internal/store"
)

// Planner handles the content calendar: post CRUD and variant navigation.
type Planner struct {
	posts   *store.PostStore
	formats *store.FormatStore
}

// NewPlanner creates a new Planner handler group.
func NewPlanner(posts *store.PostStore, formats *store.FormatStore) *Planner {
	return &Planner{posts: posts, formats: formats}
}

// ListPosts returns the account's posts, optionally windowed by the
// from/to query parameters (RFC 3339 or YYYY-MM-DD).
func (p *Planner) ListPosts(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	from, ok := parseDateParam(r, "from")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid from date")
		return
	}
	to, ok := parseDateParam(r, "to")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid to date")
		return
	}

	posts, err := p.posts.ListByAccount(sess.AccountID, from, to)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if posts == nil {
		posts = []models.SocialPost{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// CreatePost adds a manual post to the calendar.
func (p *Planner) CreatePost(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var post models.SocialPost
	if err := decodeJSON(r, &post); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	post.AccountID = sess.AccountID
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if post.MediaSource == "" {
		post.MediaSource = models.MediaSourceClientUpload
	}
	if msg := validatePost(&post); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if err := p.posts.Create(&post); err != nil {
		slog.Error("create post failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// GetPost returns one post, with ownership enforced.
func (p *Planner) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := p.ownedPost(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// UpdatePost saves edits to a post's copy, schedule or status. Media
// fields are managed by the generation and upload endpoints and are
// preserved as stored.
func (p *Planner) UpdatePost(w http.ResponseWriter, r *http.Request) {
	post, ok := p.ownedPost(w, r)
	if !ok {
		return
	}

	var req struct {
		Platform models.Platform   `json:"platform"`
		Date     time.Time         `json:"date"`
		Content  string            `json:"content"`
		Hashtags []string          `json:"hashtags"`
		Status   models.PostStatus `json:"status"`
		Format   *string           `json:"format"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post.Platform = req.Platform
	post.Date = req.Date
	post.Content = req.Content
	post.Hashtags = req.Hashtags
	post.Status = req.Status
	post.Format = req.Format
	if msg := validatePost(post); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if err := p.posts.Update(post); err != nil {
		slog.Error("update post failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// DeletePost removes a post from the calendar.
func (p *Planner) DeletePost(w http.ResponseWriter, r *http.Request) {
	post, ok := p.ownedPost(w, r)
	if !ok {
		return
	}
	if err := p.posts.Delete(post.ID); err != nil {
		slog.Error("delete post failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// NextVariant cycles the displayed AI variant forward.
func (p *Planner) NextVariant(w http.ResponseWriter, r *http.Request) {
	p.cycleVariant(w, r, 1)
}

// PrevVariant cycles the displayed AI variant backward.
func (p *Planner) PrevVariant(w http.ResponseWriter, r *http.Request) {
	p.cycleVariant(w, r, -1)
}

func (p *Planner) cycleVariant(w http.ResponseWriter, r *http.Request, step int) {
	post, ok := p.ownedPost(w, r)
	if !ok {
		return
	}

	url, err := generation.CycleVariant(post, step)
	if err != nil {
		writeError(w, http.StatusConflict, "post has no generated variants")
		return
	}
	if err := p.posts.Update(post); err != nil {
		slog.Error("variant update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"url":           url,
		"variant_index": post.VariantIndex,
		"variant_count": len(post.VariantHistory),
	})
}

// ListFormats returns the account's content formats.
func (p *Planner) ListFormats(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	formats, err := p.formats.ListByAccount(sess.AccountID)
	if err != nil {
		slog.Error("list formats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if formats == nil {
		formats = []models.ContentFormat{}
	}
	writeJSON(w, http.StatusOK, formats)
}

// CreateFormat adds a content format.
func (p *Planner) CreateFormat(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var f models.ContentFormat
	if err := decodeJSON(r, &f); err != nil || f.Name == "" {
		writeError(w, http.StatusBadRequest, "format name is required")
		return
	}
	f.AccountID = sess.AccountID
	if f.PostsPerWeek <= 0 {
		f.PostsPerWeek = 1
	}
	if f.Color == "" {
		f.Color = "#8C4DFF"
	}

	if err := p.formats.Create(&f); err != nil {
		slog.Error("create format failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// DeleteFormat removes a content format.
func (p *Planner) DeleteFormat(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid format id")
		return
	}
	if err := p.formats.Delete(id); err != nil {
		slog.Error("delete format failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ownedPost loads the post from the URL and verifies the session owns
// it. Writes the error response itself when the post cannot be used.
func (p *Planner) ownedPost(w http.ResponseWriter, r *http.Request) (*models.SocialPost, bool) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return nil, false
	}
	post, err := p.posts.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	if post == nil || post.AccountID != sess.AccountID {
		writeError(w, http.StatusNotFound, "post not found")
		return nil, false
	}
	return post, true
}

// parseDateParam reads an optional date query parameter. Returns a zero
// time when the parameter is absent.
func parseDateParam(r *http.Request, name string) (time.Time, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true
	}
	return time.Time{}, false
}
