// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"socialstudio/internal/models"
)

func newTestPost() *models.SocialPost {
	return &models.SocialPost{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		Platform:  models.PlatformInstagram,
		Content:   "Fresh sourdough every morning",
		Status:    models.PostStatusDraft,
	}
}

func TestAppendVariantRecordsAndSelects(t *testing.T) {
	p := newTestPost()
	AppendVariant(p, "https://cdn.test/a.png")
	AppendVariant(p, "https://cdn.test/b.png")

	if len(p.VariantHistory) != 2 {
		t.Fatalf("history len = %d, want 2", len(p.VariantHistory))
	}
	if p.VariantIndex != 1 {
		t.Fatalf("index = %d, want 1", p.VariantIndex)
	}
	if p.ImageURL == nil || *p.ImageURL != "https://cdn.test/b.png" {
		t.Fatalf("image url = %v, want b.png", p.ImageURL)
	}
	if p.MediaSource != models.MediaSourceAIGenerated {
		t.Fatalf("media source = %q", p.MediaSource)
	}
}

func TestAppendVariantDeduplicates(t *testing.T) {
	p := newTestPost()
	AppendVariant(p, "https://cdn.test/a.png")
	AppendVariant(p, "https://cdn.test/b.png")
	AppendVariant(p, "https://cdn.test/a.png")

	if len(p.VariantHistory) != 2 {
		t.Fatalf("history len = %d, want 2 after duplicate", len(p.VariantHistory))
	}
	if p.VariantIndex != 0 {
		t.Fatalf("index = %d, want 0 (moved back to existing entry)", p.VariantIndex)
	}
}

func TestCycleVariantWrapsBothWays(t *testing.T) {
	p := newTestPost()
	AppendVariant(p, "https://cdn.test/a.png")
	AppendVariant(p, "https://cdn.test/b.png")
	AppendVariant(p, "https://cdn.test/c.png")

	// Forward from the newest wraps to the oldest.
	url, err := CycleVariant(p, 1)
	if err != nil {
		t.Fatalf("CycleVariant: %v", err)
	}
	if url != "https://cdn.test/a.png" {
		t.Fatalf("url = %q, want a.png", url)
	}

	// Backward from the oldest wraps to the newest.
	url, err = CycleVariant(p, -1)
	if err != nil {
		t.Fatalf("CycleVariant: %v", err)
	}
	if url != "https://cdn.test/c.png" {
		t.Fatalf("url = %q, want c.png", url)
	}
	if p.CurrentMedia() != url {
		t.Fatalf("current media = %q, want %q", p.CurrentMedia(), url)
	}
}

func TestCycleVariantEmptyHistory(t *testing.T) {
	p := newTestPost()
	if _, err := CycleVariant(p, 1); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("err = %v, want ErrNoHistory", err)
	}
}

func TestCycleVariantAppliesVideoMedia(t *testing.T) {
	p := newTestPost()
	AppendVariant(p, "https://cdn.test/a.png")
	AppendVariant(p, "https://cdn.test/clip.mp4")

	if p.VideoURL == nil || p.ImageURL != nil {
		t.Fatal("appending a video variant should clear the image")
	}
	if _, err := CycleVariant(p, -1); err != nil {
		t.Fatalf("CycleVariant: %v", err)
	}
	if p.ImageURL == nil || p.VideoURL != nil {
		t.Fatal("cycling back to an image variant should clear the video")
	}
}
