// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"socialstudio/internal/imaging"
	"socialstudio/internal/middleware"
	"socialstudio/internal/models"
	"socialstudio/internal/slug"
	"socialstudio/internal/storage"
	"socialstudio/internal/store"
)

// maxUploadBytes caps client media uploads at 25 MB.
const maxUploadBytes = 25 << 20

var uploadTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".webm": "video/webm",
}

// Media handles client uploads of post media and removal of stored
// assets. Generated media goes through the generation pipeline instead.
type Media struct {
	storage *storage.Client
	posts   *store.PostStore
}

// NewMedia creates a new Media handler group.
func NewMedia(st *storage.Client, posts *store.PostStore) *Media {
	return &Media{storage: st, posts: posts}
}

// Upload attaches a user-provided file to a post. Expects a multipart
// form with a "file" part; the stored URL replaces the post's media and
// marks it as a client upload.
func (m *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if m.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "media storage is not configured")
		return
	}
	post, ok := m.ownedPost(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart form with a file part is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := uploadTypes[ext]
	if !ok {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported file type")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "upload could not be read")
		return
	}

	video := strings.HasPrefix(contentType, "video/")
	if !video {
		// Uploads are normalized to feed-ready WebP; videos are stored as-is.
		opt, err := imaging.Optimize(data)
		if err != nil {
			slog.Warn("image optimization failed, storing original", "error", err)
		} else {
			data = opt.Data
			contentType = opt.ContentType
			ext = ".webp"
		}
	}

	key := mediaKey(post.AccountID, header.Filename, ext)
	url, err := m.storage.Upload(r.Context(), key, data, contentType)
	if err != nil {
		slog.Error("media upload failed", "post_id", post.ID, "error", err)
		writeError(w, http.StatusBadGateway, "upload failed")
		return
	}

	if video {
		post.SetVideo(url)
	} else {
		post.SetImage(url)
	}
	post.MediaSource = models.MediaSourceClientUpload
	if err := m.posts.Update(post); err != nil {
		slog.Error("post persist failed", "post_id", post.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Remove detaches the post's current media. The stored object is
// deleted only when it lives in our bucket and no other variant of the
// post references it.
func (m *Media) Remove(w http.ResponseWriter, r *http.Request) {
	post, ok := m.ownedPost(w, r)
	if !ok {
		return
	}
	current := post.CurrentMedia()
	if current == "" {
		writeError(w, http.StatusConflict, "post has no media")
		return
	}

	if m.storage != nil && !referenced(post.VariantHistory, current) {
		if key, owned := m.storage.ExtractKey(current); owned {
			if err := m.storage.Delete(r.Context(), key); err != nil {
				slog.Warn("media delete failed", "key", key, "error", err)
			}
		}
	}

	post.ImageURL = nil
	post.VideoURL = nil
	if err := m.posts.Update(post); err != nil {
		slog.Error("post persist failed", "post_id", post.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (m *Media) ownedPost(w http.ResponseWriter, r *http.Request) (*models.SocialPost, bool) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return nil, false
	}
	post, err := m.posts.FindByID(id)
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

// mediaKey builds the object key for an upload: a readable slug of the
// original filename plus a random suffix to keep keys unique.
func mediaKey(accountID uuid.UUID, filename, ext string) string {
	base := slug.Generate(strings.TrimSuffix(filename, filepath.Ext(filename)))
	if base == "" {
		base = "upload"
	}
	return fmt.Sprintf("media/%s/%s-%s%s", accountID, base, uuid.NewString()[:8], ext)
}

func referenced(history []string, url string) bool {
	for _, h := range history {
		if h == url {
			return true
		}
	}
	return false
}
