// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"socialstudio/internal/models"
)

// testAccount creates a throwaway account for post tests. Cascade delete
// in cleanup removes the posts created under it.
func testAccount(t *testing.T, db *sql.DB, email string) uuid.UUID {
	t.Helper()
	cleanAccounts(t, db, email)
	t.Cleanup(func() { cleanAccounts(t, db, email) })

	a, err := NewAccountStore(db).Create(email, "secret123", "Post Tests")
	if err != nil {
		t.Fatalf("create test account: %v", err)
	}
	return a.ID
}

func TestPostCreateAndRoundTrip(t *testing.T) {
	db := testDB(t)
	accountID := testAccount(t, db, "post-test@socialstudio.test")
	s := NewPostStore(db)

	img := "https://cdn.test/media/a.png"
	prompt := "warm bakery scene"
	p := &models.SocialPost{
		AccountID:      accountID,
		Platform:       models.PlatformInstagram,
		Date:           time.Now().Truncate(time.Second),
		Content:        "Fresh sourdough!",
		Hashtags:       []string{"bakery", "sourdough"},
		Status:         models.PostStatusNeedsReview,
		MediaSource:    models.MediaSourceAIGenerated,
		ImageURL:       &img,
		VariantHistory: []string{img},
		AIPrompt:       &prompt,
		Debug: &models.GenerationDebug{
			Kind: models.DebugKindImage,
			Image: &models.ImageDebug{
				Palette:        []string{"#D97706"},
				MissingContext: []string{"logo_url"},
				Brief:          json.RawMessage(`{"main_subject":"bread"}`),
			},
		},
	}
	if err := s.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.FindByID(p.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil {
		t.Fatal("post not found")
	}
	if len(got.Hashtags) != 2 || got.Hashtags[0] != "bakery" {
		t.Errorf("hashtags = %v", got.Hashtags)
	}
	if len(got.VariantHistory) != 1 || got.VariantHistory[0] != img {
		t.Errorf("history = %v", got.VariantHistory)
	}
	if got.Debug == nil || got.Debug.Kind != models.DebugKindImage {
		t.Errorf("debug = %+v", got.Debug)
	} else if got.Debug.Image == nil || len(got.Debug.Image.Palette) != 1 {
		t.Errorf("debug image payload = %+v", got.Debug.Image)
	}
	if got.ImageURL == nil || got.VideoURL != nil {
		t.Error("media columns wrong")
	}
}

func TestPostMediaExclusivityEnforced(t *testing.T) {
	db := testDB(t)
	accountID := testAccount(t, db, "post-excl@socialstudio.test")
	s := NewPostStore(db)

	img := "https://cdn.test/a.png"
	vid := "https://cdn.test/b.mp4"
	p := &models.SocialPost{
		AccountID:   accountID,
		Platform:    models.PlatformTikTok,
		Date:        time.Now(),
		Content:     "clip",
		Status:      models.PostStatusDraft,
		MediaSource: models.MediaSourceAIGenerated,
		ImageURL:    &img,
		VideoURL:    &vid,
	}
	if err := s.Create(p); err == nil {
		t.Fatal("expected check violation for image and video together")
	}
}

func TestPostUpdateSwitchesMedia(t *testing.T) {
	db := testDB(t)
	accountID := testAccount(t, db, "post-update@socialstudio.test")
	s := NewPostStore(db)

	img := "https://cdn.test/a.png"
	p := &models.SocialPost{
		AccountID:   accountID,
		Platform:    models.PlatformFacebook,
		Date:        time.Now(),
		Content:     "before",
		Status:      models.PostStatusDraft,
		MediaSource: models.MediaSourceAIGenerated,
		ImageURL:    &img,
	}
	if err := s.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	p.SetVideo("https://cdn.test/clip.mp4")
	p.VariantHistory = append(p.VariantHistory, "https://cdn.test/clip.mp4")
	p.VariantIndex = len(p.VariantHistory) - 1
	p.Content = "after"
	if err := s.Update(p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := s.FindByID(p.ID)
	if got.VideoURL == nil || got.ImageURL != nil {
		t.Error("update did not switch media")
	}
	if got.Content != "after" {
		t.Errorf("content = %q", got.Content)
	}
}

func TestPostListByAccountDateWindow(t *testing.T) {
	db := testDB(t)
	accountID := testAccount(t, db, "post-list@socialstudio.test")
	s := NewPostStore(db)

	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		p := &models.SocialPost{
			AccountID:   accountID,
			Platform:    models.PlatformInstagram,
			Date:        base.AddDate(0, 0, i),
			Content:     "post",
			Status:      models.PostStatusDraft,
			MediaSource: models.MediaSourceAIGenerated,
		}
		if err := s.Create(p); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	posts, err := s.ListByAccount(accountID, base, base.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("ListByAccount: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2 in window", len(posts))
	}
	if !posts[0].Date.Before(posts[1].Date) {
		t.Error("posts not ordered by date")
	}
}

func TestPostCreateBatch(t *testing.T) {
	db := testDB(t)
	accountID := testAccount(t, db, "post-batch@socialstudio.test")
	s := NewPostStore(db)

	batch := []models.SocialPost{
		{AccountID: accountID, Platform: models.PlatformInstagram, Date: time.Now(), Content: "one", Status: models.PostStatusNeedsReview, MediaSource: models.MediaSourceAIGenerated},
		{AccountID: accountID, Platform: models.PlatformLinkedIn, Date: time.Now(), Content: "two", Status: models.PostStatusNeedsReview, MediaSource: models.MediaSourceAIGenerated},
	}
	if err := s.CreateBatch(batch); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	for i := range batch {
		if batch[i].ID == uuid.Nil {
			t.Errorf("post %d has no id", i)
		}
	}
}
