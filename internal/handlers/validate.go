package handlers

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"socialstudio/internal/models"
)

// Validation limits for user-supplied fields.
const (
	minPasswordLen = 8
	maxContentLen  = 5_000
	maxNameLen     = 200
	maxEditLen     = 500
	maxHashtags    = 30
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// validateCredentials checks registration/login inputs and returns the
// first error found, or "".
func validateCredentials(email, password string) string {
	if _, err := mail.ParseAddress(email); err != nil {
		return "A valid email address is required."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	return ""
}

// validateProfile checks brand profile inputs and returns the first
// error found, or "".
func validateProfile(p *models.BrandProfile) string {
	if strings.TrimSpace(p.Name) == "" {
		return "Brand name is required."
	}
	if utf8.RuneCountInString(p.Name) > maxNameLen {
		return "Brand name is too long (max 200 characters)."
	}
	if !p.Tone.Valid() {
		return "Tone must be one of: professional, funny, inspirational, edgy."
	}
	if !hexColor.MatchString(p.PrimaryColor) {
		return "Primary color must be a hex color like #8C4DFF."
	}
	if p.SecondaryColor != nil && *p.SecondaryColor != "" && !hexColor.MatchString(*p.SecondaryColor) {
		return "Secondary color must be a hex color like #8C4DFF."
	}
	if len(p.StyleReferenceURLs) > models.MaxStyleReferences {
		return "At most 3 style reference images are allowed."
	}
	return ""
}

// validatePost checks planner post inputs and returns the first error
// found, or "".
func validatePost(p *models.SocialPost) string {
	if !p.Platform.Valid() {
		return "Platform must be one of: facebook, instagram, linkedin, tiktok."
	}
	if strings.TrimSpace(p.Content) == "" {
		return "Post content is required."
	}
	if utf8.RuneCountInString(p.Content) > maxContentLen {
		return "Post content is too long (max 5,000 characters)."
	}
	if !p.Status.Valid() {
		return "Invalid post status."
	}
	if !p.MediaSource.Valid() {
		return "Invalid media source."
	}
	if len(p.Hashtags) > maxHashtags {
		return "Too many hashtags (max 30)."
	}
	if p.Date.IsZero() {
		return "Post date is required."
	}
	return ""
}
