// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brief

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"socialstudio/internal/ai"
)

// Generator is the slice of the AI registry the synthesizer needs.
// *ai.Registry satisfies it.
type Generator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Synthesizer produces creative briefs through the active text model.
type Synthesizer struct {
	gen Generator
}

// NewSynthesizer creates a Synthesizer over the given generator.
func NewSynthesizer(gen Generator) *Synthesizer {
	return &Synthesizer{gen: gen}
}

// Result is a synthesized brief plus its traceability data.
type Result struct {
	Brief *Brief
	// Fallback is true when the model call failed and the default
	// brand-identity brief was substituted.
	Fallback bool
	// Defaulted lists brief fields that had to be filled with defaults.
	Defaulted []string
	// MissingContext lists brand-profile fields that were empty.
	MissingContext []string
}

const briefSystemPrompt = `You are a creative director for a social media studio.
Analyze the brand context and post content and produce a structured creative brief
for a single image.

Rules:
1. Focus on visual storytelling, NOT copying the post text.
2. Favor photorealistic, premium, or specific artistic styles consistent with the industry.
3. The brand colors should influence lighting, mood, or accents.
4. No long paragraphs of text on the image.

Return ONLY a JSON object with these fields:
main_subject (string), visual_style (string), mood (string),
color_direction (array of 3-5 hex colors), composition (string),
keywords (array of strings), text_policy ({allow_text: bool, overlay_text: string}).`

// Synthesize produces a brief for the request. It never fails: model
// errors and unparseable output both degrade to the default brief, and
// the result records how much degradation happened.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) *Result {
	res := &Result{MissingContext: MissingContext(req.Profile)}

	raw, err := s.gen.GenerateJSON(ctx, briefSystemPrompt, s.userPrompt(req))
	if err != nil {
		slog.Warn("brief synthesis failed, using default brief", "error", err)
		res.Brief = Default(req.Profile)
		res.Fallback = true
		return res
	}

	b, ok := ai.DecodeJSON(raw, Brief{})
	if !ok {
		slog.Warn("brief response was not valid JSON, using default brief")
		res.Brief = Default(req.Profile)
		res.Fallback = true
		return res
	}

	res.Defaulted = b.normalize(req.Profile)
	res.Brief = &b
	return res
}

// userPrompt assembles the brand context block sent to the model. The seed
// and edit instruction bias the model toward a different concept on
// regeneration without changing the request shape.
func (s *Synthesizer) userPrompt(req Request) string {
	p := req.Profile

	var sb strings.Builder
	sb.WriteString("BRAND CONTEXT:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", p.Name)
	fmt.Fprintf(&sb, "- Industry: %s\n", orDefault(p.Industry, "Standard business"))
	fmt.Fprintf(&sb, "- Voice: %s\n", p.Voice())
	fmt.Fprintf(&sb, "- Mission: %s\n", orDefaultPtr(p.BusinessDescription, "Standard business operations"))
	fmt.Fprintf(&sb, "- USPs: %s\n", orDefaultPtr(p.ValueProposition, "Premium quality and reliability"))
	fmt.Fprintf(&sb, "- Brand colors: %s, %s\n", p.PrimaryColor, orDefaultPtr(p.SecondaryColor, "Neutral"))
	fmt.Fprintf(&sb, "- Target audience: %s\n", p.TargetAudience)

	fmt.Fprintf(&sb, "\nPOST CONTENT:\n%q\n", req.PostContent)
	fmt.Fprintf(&sb, "\nPLATFORM: %s\n", req.Platform)

	if req.Mode == ModePoster {
		sb.WriteString("\nTREATMENT: bold graphic poster composition, flat design, strong shapes.\n")
	} else {
		sb.WriteString("\nTREATMENT: photorealistic photography, natural lighting.\n")
	}

	if req.EditInstruction != "" {
		fmt.Fprintf(&sb, "\nUSER ADJUSTMENT: %s\n", req.EditInstruction)
	}

	if req.Seed > 0 {
		fmt.Fprintf(&sb, "\nVARIATION %d: propose a clearly different concept than earlier variations for this post.\n", req.Seed)
	}

	return sb.String()
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func orDefaultPtr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
