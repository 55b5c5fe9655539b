// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brief

import (
	"context"
	"errors"
	"strings"
	"testing"

	"socialstudio/internal/models"
)

// fakeGenerator returns a canned response or error.
type fakeGenerator struct {
	response string
	err      error
	lastUser string
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, _, userPrompt string) (string, error) {
	f.lastUser = userPrompt
	return f.response, f.err
}

func testProfile() *models.BrandProfile {
	secondary := "#34E0F7"
	voice := "bold and direct"
	return &models.BrandProfile{
		Name:           "Nebula Coffee",
		Industry:       "Food & Beverage",
		TargetAudience: "Urban professionals",
		Tone:           models.ToneFunny,
		PrimaryColor:   "#8C4DFF",
		SecondaryColor: &secondary,
		BrandVoice:     &voice,
	}
}

func testRequest(profile *models.BrandProfile) Request {
	return Request{
		PostContent: "Launching our new cold brew line!",
		Profile:     profile,
		Platform:    models.PlatformInstagram,
		Mode:        ModePhoto,
	}
}

func TestSynthesizeParsesModelBrief(t *testing.T) {
	gen := &fakeGenerator{response: `{
		"main_subject": "a frosted glass of cold brew on a marble counter",
		"visual_style": "editorial food photography",
		"mood": "fresh and energetic",
		"color_direction": ["#8C4DFF", "#34E0F7", "#FFFFFF"],
		"composition": "top-down flat lay",
		"keywords": ["coffee", "summer"],
		"text_policy": {"allow_text": false}
	}`}

	s := NewSynthesizer(gen)
	res := s.Synthesize(context.Background(), testRequest(testProfile()))

	if res.Fallback {
		t.Fatal("valid response should not trigger fallback")
	}
	if res.Brief.MainSubject != "a frosted glass of cold brew on a marble counter" {
		t.Errorf("unexpected subject %q", res.Brief.MainSubject)
	}
	if len(res.Defaulted) != 0 {
		t.Errorf("complete brief should need no defaults, got %v", res.Defaulted)
	}
}

func TestSynthesizeFallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}

	s := NewSynthesizer(gen)
	res := s.Synthesize(context.Background(), testRequest(testProfile()))

	if !res.Fallback {
		t.Fatal("expected fallback on model error")
	}
	if res.Brief.MainSubject == "" {
		t.Error("fallback brief must have a non-empty subject")
	}
	if len(res.Brief.Palette) == 0 {
		t.Error("fallback brief must have a non-empty palette")
	}
	if res.Brief.Palette[0] != "#8C4DFF" {
		t.Errorf("fallback palette should start with the primary color, got %v", res.Brief.Palette)
	}
}

func TestSynthesizeFallsBackOnGarbage(t *testing.T) {
	gen := &fakeGenerator{response: "I'm sorry, I can't help with that."}

	s := NewSynthesizer(gen)
	res := s.Synthesize(context.Background(), testRequest(testProfile()))

	if !res.Fallback {
		t.Fatal("expected fallback on unparseable response")
	}
	if res.Brief.MainSubject == "" || len(res.Brief.Palette) == 0 {
		t.Error("fallback brief must be complete")
	}
}

func TestSynthesizeNormalizesPartialBrief(t *testing.T) {
	// Subject present but style, mood, and palette missing.
	gen := &fakeGenerator{response: `{"main_subject": "a barista at work"}`}

	s := NewSynthesizer(gen)
	res := s.Synthesize(context.Background(), testRequest(testProfile()))

	if res.Fallback {
		t.Fatal("parseable brief should not be a fallback")
	}
	if res.Brief.VisualStyle == "" || res.Brief.Mood == "" {
		t.Error("normalize must fill style and mood")
	}
	if len(res.Brief.Palette) < 3 {
		t.Errorf("normalize must top up the palette to 3, got %v", res.Brief.Palette)
	}
	if len(res.Defaulted) == 0 {
		t.Error("defaulted fields should be recorded")
	}
}

func TestSynthesizePromptIncludesSeedAndEdit(t *testing.T) {
	gen := &fakeGenerator{response: `{"main_subject": "x"}`}
	s := NewSynthesizer(gen)

	req := testRequest(testProfile())
	req.Seed = 2
	req.EditInstruction = "warmer colors"
	s.Synthesize(context.Background(), req)

	if !strings.Contains(gen.lastUser, "VARIATION 2") {
		t.Error("seed not reflected in prompt")
	}
	if !strings.Contains(gen.lastUser, "warmer colors") {
		t.Error("edit instruction not reflected in prompt")
	}
}

func TestMissingContext(t *testing.T) {
	profile := testProfile()
	profile.BusinessDescription = nil
	profile.ValueProposition = nil

	missing := MissingContext(profile)

	want := map[string]bool{"business_description": true, "value_proposition": true}
	for _, m := range missing {
		if !want[m] {
			t.Errorf("unexpected missing field %q", m)
		}
		delete(want, m)
	}
	for m := range want {
		t.Errorf("field %q not reported missing", m)
	}
}

func TestClampPaletteTrimsToFive(t *testing.T) {
	palette := []string{"#1", "#2", "#3", "#4", "#5", "#6", "#7"}
	out := clampPalette(palette, testProfile())
	if len(out) != 5 {
		t.Errorf("expected 5 entries, got %d", len(out))
	}
}

func TestImagePromptContainsBriefFields(t *testing.T) {
	profile := testProfile()
	b := Default(profile)

	prompt := ImagePrompt(b, profile, ModePhoto)

	for _, want := range []string{b.MainSubject, b.Mood, "#8C4DFF", "Avoid:"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestImagePromptPosterMode(t *testing.T) {
	profile := testProfile()
	b := Default(profile)

	prompt := ImagePrompt(b, profile, ModePoster)
	if !strings.Contains(strings.ToLower(prompt), "poster") {
		t.Error("poster mode should surface in the prompt")
	}
}

func TestVideoPrompt(t *testing.T) {
	profile := testProfile()
	prompt := VideoPrompt("Grand opening this Friday", profile, "slow dolly shot")

	for _, want := range []string{"Nebula Coffee", "Grand opening this Friday", "slow dolly shot"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("video prompt missing %q", want)
		}
	}
}
