// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brief

import (
	"fmt"
	"strings"

	"socialstudio/internal/models"
)

// negativePrompt lists the artifacts every image request must avoid.
// Image models still hallucinate on-image typography; spelling it out
// measurably reduces it.
const negativePrompt = "no gibberish text, no random letters, no paragraphs, " +
	"no watermark, no UI elements, no poster frame full of text, " +
	"no distorted typography, no misspelled words, no logo made of text"

// ImagePrompt composes the final image prompt from a brief: the second
// stage of the pipeline. The returned string is exactly what is sent to
// the image model and is recorded on the post for traceability.
func ImagePrompt(b *Brief, profile *models.BrandProfile, mode Mode) string {
	style := b.VisualStyle
	if mode == ModePoster && !strings.Contains(strings.ToLower(style), "poster") {
		style = "graphic poster, " + style
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "A %s image of %s. ", style, b.MainSubject)
	fmt.Fprintf(&sb, "Mood: %s. ", b.Mood)
	if b.Composition != "" {
		fmt.Fprintf(&sb, "Composition: %s. ", b.Composition)
	}
	fmt.Fprintf(&sb, "Lighting and accents in %s. ", strings.Join(b.Palette, " and "))
	if len(b.Keywords) > 0 {
		fmt.Fprintf(&sb, "Aesthetic keywords: %s. ", strings.Join(b.Keywords, ", "))
	}
	sb.WriteString("Highly detailed, premium quality. ")
	fmt.Fprintf(&sb, "Consistent with %s's %s brand voice. ", profile.Name, profile.Voice())
	fmt.Fprintf(&sb, "Avoid: %s", negativePrompt)

	return sb.String()
}

// VideoPrompt composes the prompt for a video generation from the post
// content and brand context. Video skips the brief stage: the video model
// takes a single prompt, so the brand context is inlined.
func VideoPrompt(postContent string, profile *models.BrandProfile, editInstruction string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Cinematic brand video for %s (%s): %s. ",
		profile.Name, orDefault(profile.Industry, "business"), postContent)
	fmt.Fprintf(&sb, "Tone: %s. ", profile.Voice())
	fmt.Fprintf(&sb, "Color accents: %s. ", profile.PrimaryColor)
	if editInstruction != "" {
		fmt.Fprintf(&sb, "Direction: %s. ", editInstruction)
	}
	sb.WriteString("No on-screen text, no captions, no watermarks.")
	return sb.String()
}
