// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Platform identifies the social network a post targets.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
)

// Valid reports whether the platform is one of the supported networks.
func (p Platform) Valid() bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformLinkedIn, PlatformTikTok:
		return true
	}
	return false
}

// PostStatus represents the review lifecycle of a planned post.
type PostStatus string

const (
	PostStatusDraft       PostStatus = "draft"
	PostStatusNeedsReview PostStatus = "needs_review"
	PostStatusApproved    PostStatus = "approved"
	PostStatusScheduled   PostStatus = "scheduled"
	PostStatusPublished   PostStatus = "published"
)

// Valid reports whether the status is one of the lifecycle states.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusNeedsReview, PostStatusApproved,
		PostStatusScheduled, PostStatusPublished:
		return true
	}
	return false
}

// MediaSource records where a post's media came from.
type MediaSource string

const (
	MediaSourceAIGenerated  MediaSource = "ai_generated"
	MediaSourceClientUpload MediaSource = "client_upload"
)

// Valid reports whether the media source is a supported value.
func (m MediaSource) Valid() bool {
	return m == MediaSourceAIGenerated || m == MediaSourceClientUpload
}

// Debug kind discriminators.
const (
	DebugKindImage = "image"
	DebugKindVideo = "video"
)

// ImageDebug is the traceability payload of an image run: the palette
// that was applied, brand-context fields that were missing at brief
// time, and a snapshot of the brief itself.
type ImageDebug struct {
	Palette        []string        `json:"palette,omitempty"`
	MissingContext []string        `json:"missing_context,omitempty"`
	Brief          json.RawMessage `json:"brief,omitempty"`
}

// VideoDebug is the traceability payload of a video run.
type VideoDebug struct {
	MissingContext []string `json:"missing_context,omitempty"`
	AspectRatio    string   `json:"aspect_ratio,omitempty"`
	Resolution     string   `json:"resolution,omitempty"`
}

// GenerationDebug is the traceability metadata recorded alongside each
// AI-produced asset. Kind tags the payload; exactly one of Image/Video
// is set, matching Kind.
type GenerationDebug struct {
	Kind  string      `json:"kind"`
	Image *ImageDebug `json:"image,omitempty"`
	Video *VideoDebug `json:"video,omitempty"`
}

// SocialPost is a planned content unit in the planner.
//
// At most one of ImageURL/VideoURL is authoritative at a time: setting one
// clears the other. VariantHistory accumulates every AI-produced URL for
// this post (deduplicated, in production order) and VariantIndex points at
// the currently displayed one; when the history is non-empty the current
// media URL is always a member of it.
type SocialPost struct {
	ID             uuid.UUID        `json:"id"`
	AccountID      uuid.UUID        `json:"account_id"`
	Platform       Platform         `json:"platform"`
	Date           time.Time        `json:"date"`
	Content        string           `json:"content"`
	Hashtags       []string         `json:"hashtags"`
	Status         PostStatus       `json:"status"`
	MediaSource    MediaSource      `json:"media_source"`
	ImageURL       *string          `json:"image_url,omitempty"`
	VideoURL       *string          `json:"video_url,omitempty"`
	VariantHistory []string         `json:"variant_history,omitempty"`
	VariantIndex   int              `json:"variant_index"`
	Format         *string          `json:"format,omitempty"`
	AIPrompt       *string          `json:"ai_prompt,omitempty"`
	Debug          *GenerationDebug `json:"generation_debug,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// SetImage makes url the post's authoritative media, clearing any video.
func (p *SocialPost) SetImage(url string) {
	p.ImageURL = &url
	p.VideoURL = nil
}

// SetVideo makes url the post's authoritative media, clearing any image.
func (p *SocialPost) SetVideo(url string) {
	p.VideoURL = &url
	p.ImageURL = nil
}

// CurrentMedia returns the authoritative media URL, or "" when the post
// has none.
func (p *SocialPost) CurrentMedia() string {
	if p.ImageURL != nil {
		return *p.ImageURL
	}
	if p.VideoURL != nil {
		return *p.VideoURL
	}
	return ""
}
