// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"strings"

	"socialstudio/internal/models"
)

// AppendVariant records url as the latest AI-produced asset for the post
// and makes it the displayed variant. A URL already present in the history
// is not duplicated; the index simply moves back to it.
func AppendVariant(p *models.SocialPost, url string) {
	for i, existing := range p.VariantHistory {
		if existing == url {
			p.VariantIndex = i
			applyMedia(p, url)
			return
		}
	}
	p.VariantHistory = append(p.VariantHistory, url)
	p.VariantIndex = len(p.VariantHistory) - 1
	applyMedia(p, url)
}

// CycleVariant moves the displayed variant by step positions, wrapping at
// both ends, and applies the selected URL as the post's current media.
// Stepping forward from the newest variant lands on the oldest and vice
// versa.
func CycleVariant(p *models.SocialPost, step int) (string, error) {
	n := len(p.VariantHistory)
	if n == 0 {
		return "", ErrNoHistory
	}
	idx := (p.VariantIndex + step) % n
	if idx < 0 {
		idx += n
	}
	p.VariantIndex = idx
	url := p.VariantHistory[idx]
	applyMedia(p, url)
	return url, nil
}

// IsVideoURL classifies a stored media URL by its file extension. The
// renderer always uploads video as .mp4, so extension sniffing is
// sufficient for history entries.
func IsVideoURL(url string) bool {
	return strings.HasSuffix(url, ".mp4") || strings.HasSuffix(url, ".webm")
}

func applyMedia(p *models.SocialPost, url string) {
	if IsVideoURL(url) {
		p.SetVideo(url)
	} else {
		p.SetImage(url)
	}
	p.MediaSource = models.MediaSourceAIGenerated
}
