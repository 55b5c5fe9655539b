// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package brief turns a post's text and its brand profile into a
// structured creative brief: the first stage of the two-stage generation
// pipeline. The brief is synthesized by the active text model; when the
// model fails or returns garbage, the synthesizer falls back to a default
// brand-identity brief so the render stage always has something to work
// with. Synthesis failures are never fatal.
package brief

import (
	"socialstudio/internal/models"
)

// Mode selects the overall visual treatment of a generated image.
type Mode string

const (
	ModePhoto  Mode = "PHOTO"  // photorealistic scene
	ModePoster Mode = "POSTER" // graphic poster composition
)

// Valid reports whether the mode is a supported value.
func (m Mode) Valid() bool {
	return m == ModePhoto || m == ModePoster
}

// TextPolicy controls whether and what text the model may render on the image.
type TextPolicy struct {
	AllowText   bool   `json:"allow_text"`
	OverlayText string `json:"overlay_text,omitempty"`
}

// Brief is a structured creative brief driving a single media generation.
// The field names mirror the JSON schema requested from the model.
type Brief struct {
	MainSubject string     `json:"main_subject"`
	VisualStyle string     `json:"visual_style"`
	Mood        string     `json:"mood"`
	Palette     []string   `json:"color_direction"`
	Composition string     `json:"composition"`
	Keywords    []string   `json:"keywords"`
	TextPolicy  TextPolicy `json:"text_policy"`
}

// Request carries everything the synthesizer needs for one brief.
type Request struct {
	PostContent     string
	Profile         *models.BrandProfile
	Platform        models.Platform
	Mode            Mode
	EditInstruction string
	Seed            int
}

// Default returns the fallback brief used when synthesis fails: a generic
// brand-identity scene in the profile's palette. It always has a non-empty
// subject and palette.
func Default(profile *models.BrandProfile) *Brief {
	b := &Brief{
		MainSubject: "A premium brand identity scene representing " + profile.Name,
		VisualStyle: "photorealistic, modern, premium",
		Mood:        "confident and aspirational",
		Composition: "clean centered composition with negative space",
		Keywords:    []string{"premium", "modern", profile.Industry},
		TextPolicy:  TextPolicy{AllowText: false},
	}
	b.Palette = defaultPalette(profile)
	return b
}

// normalize enforces the brief invariants on a model-produced brief:
// non-empty subject, 3-5 palette entries seeded from the brand colors,
// and non-empty style/mood. Returns the list of fields that needed a
// default, for debug traceability.
func (b *Brief) normalize(profile *models.BrandProfile) []string {
	var defaulted []string

	if b.MainSubject == "" {
		b.MainSubject = "A premium brand identity scene representing " + profile.Name
		defaulted = append(defaulted, "main_subject")
	}
	if b.VisualStyle == "" {
		b.VisualStyle = "photorealistic, modern, premium"
		defaulted = append(defaulted, "visual_style")
	}
	if b.Mood == "" {
		b.Mood = "confident and aspirational"
		defaulted = append(defaulted, "mood")
	}

	b.Palette = clampPalette(b.Palette, profile)
	if len(b.Palette) == 0 {
		// Unreachable once clampPalette seeds from the profile, but keep
		// the guarantee local.
		b.Palette = defaultPalette(profile)
		defaulted = append(defaulted, "color_direction")
	}

	return defaulted
}

// clampPalette trims the palette to at most five entries and tops it up
// to at least three using the brand colors.
func clampPalette(palette []string, profile *models.BrandProfile) []string {
	out := make([]string, 0, 5)
	for _, c := range palette {
		if c != "" && len(out) < 5 {
			out = append(out, c)
		}
	}
	for _, c := range defaultPalette(profile) {
		if len(out) >= 3 {
			break
		}
		if !contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func defaultPalette(profile *models.BrandProfile) []string {
	palette := []string{profile.PrimaryColor}
	if profile.PrimaryColor == "" {
		palette = []string{"#8C4DFF"}
	}
	if profile.SecondaryColor != nil && *profile.SecondaryColor != "" {
		palette = append(palette, *profile.SecondaryColor)
	}
	palette = append(palette, "#FFFFFF")
	if len(palette) < 3 {
		palette = append(palette, "#1A1A2E")
	}
	return palette
}

// MissingContext lists the brand-profile fields that were empty at brief
// time. Recorded in the post's generation debug so thin briefs can be
// traced back to thin profiles.
func MissingContext(profile *models.BrandProfile) []string {
	var missing []string
	if profile.Industry == "" {
		missing = append(missing, "industry")
	}
	if profile.BrandVoice == nil || *profile.BrandVoice == "" {
		missing = append(missing, "brand_voice")
	}
	if profile.BusinessDescription == nil || *profile.BusinessDescription == "" {
		missing = append(missing, "business_description")
	}
	if profile.ValueProposition == nil || *profile.ValueProposition == "" {
		missing = append(missing, "value_proposition")
	}
	if profile.SecondaryColor == nil || *profile.SecondaryColor == "" {
		missing = append(missing, "secondary_color")
	}
	return missing
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
