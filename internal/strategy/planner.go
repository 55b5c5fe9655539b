// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package strategy produces content plans through the active text model:
// the initial two-week plan built at onboarding, and the weekly refresh
// that folds current trends in. Unlike the creative brief, a plan that
// fails to parse is an error; there is no sensible default plan to fall
// back to.
package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"socialstudio/internal/ai"
	"socialstudio/internal/models"
)

// ErrUnusablePlan is returned when the model's plan cannot be parsed.
var ErrUnusablePlan = errors.New("strategy: model returned an unusable plan")

// Generator is the slice of the AI registry the planner needs.
// *ai.Registry satisfies it.
type Generator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Planner builds content plans for a brand.
type Planner struct {
	gen Generator
}

// NewPlanner creates a Planner over the given generator.
func NewPlanner(gen Generator) *Planner {
	return &Planner{gen: gen}
}

// plannedPost is the wire shape of one planned post in the model output.
type plannedPost struct {
	Platform  string   `json:"platform"`
	DayOffset int      `json:"day_offset"`
	Content   string   `json:"content"`
	Hashtags  []string `json:"hashtags"`
	Format    string   `json:"format"`
}

const plannerSystemPrompt = `You are a social media strategist. Produce a
posting plan as a JSON array. Each element:
platform (one of: facebook, instagram, linkedin, tiktok),
day_offset (integer, 0-based day from the start date),
content (the full post text, in the brand voice),
hashtags (array of strings, without the # prefix),
format (short label, e.g. "behind the scenes", "product highlight").
Write concrete, publishable copy. Never use placeholder text.
Return ONLY the JSON array.`

// InitialPlan generates the onboarding content plan: days posts spread
// over the period starting at start, restricted to the given platforms.
func (p *Planner) InitialPlan(ctx context.Context, profile *models.BrandProfile, platforms []models.Platform, start time.Time, days int) ([]models.SocialPost, error) {
	user := fmt.Sprintf(`%s

Create a %d-day launch plan with one post per day, rotating across these
platforms: %s. Mix educational, promotional and personality content.`,
		brandContext(profile), days, platformList(platforms))

	return p.plan(ctx, profile, platforms, start, user)
}

// WeeklyPlan generates the next week's posts, steering the copy toward
// the supplied trends. Charged at the weekly strategy credit cost by the
// caller.
func (p *Planner) WeeklyPlan(ctx context.Context, profile *models.BrandProfile, platforms []models.Platform, start time.Time, trends []Trend) ([]models.SocialPost, error) {
	var sb strings.Builder
	sb.WriteString(brandContext(profile))
	sb.WriteString(fmt.Sprintf(`

Create a 7-day plan with one post per day across these platforms: %s.`,
		platformList(platforms)))
	if len(trends) > 0 {
		sb.WriteString("\n\nCurrent trends to work in where they fit the brand:")
		for _, t := range trends {
			sb.WriteString("\n- " + t.Topic + ": " + t.Why)
		}
	}
	return p.plan(ctx, profile, platforms, start, sb.String())
}

func (p *Planner) plan(ctx context.Context, profile *models.BrandProfile, platforms []models.Platform, start time.Time, userPrompt string) ([]models.SocialPost, error) {
	raw, err := p.gen.GenerateJSON(ctx, plannerSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	planned, ok := ai.DecodeJSON(raw, []plannedPost{})
	if !ok || len(planned) == 0 {
		return nil, ErrUnusablePlan
	}

	allowed := make(map[models.Platform]bool, len(platforms))
	for _, pl := range platforms {
		allowed[pl] = true
	}

	now := time.Now()
	posts := make([]models.SocialPost, 0, len(planned))
	for _, pp := range planned {
		platform := models.Platform(strings.ToLower(pp.Platform))
		if !platform.Valid() || (len(allowed) > 0 && !allowed[platform]) {
			continue
		}
		if strings.TrimSpace(pp.Content) == "" {
			continue
		}
		if pp.DayOffset < 0 {
			pp.DayOffset = 0
		}

		post := models.SocialPost{
			ID:          uuid.New(),
			AccountID:   profile.AccountID,
			Platform:    platform,
			Date:        start.AddDate(0, 0, pp.DayOffset),
			Content:     profile.WithSignature(pp.Content),
			Hashtags:    pp.Hashtags,
			Status:      models.PostStatusNeedsReview,
			MediaSource: models.MediaSourceAIGenerated,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if pp.Format != "" {
			f := pp.Format
			post.Format = &f
		}
		posts = append(posts, post)
	}
	if len(posts) == 0 {
		return nil, ErrUnusablePlan
	}
	return posts, nil
}

func brandContext(profile *models.BrandProfile) string {
	var sb strings.Builder
	sb.WriteString("BRAND CONTEXT:\n")
	sb.WriteString("Name: " + profile.Name + "\n")
	sb.WriteString("Industry: " + profile.Industry + "\n")
	sb.WriteString("Audience: " + profile.TargetAudience + "\n")
	sb.WriteString("Voice: " + profile.Voice())
	if profile.BusinessDescription != nil && *profile.BusinessDescription != "" {
		sb.WriteString("\nAbout: " + *profile.BusinessDescription)
	}
	if profile.ValueProposition != nil && *profile.ValueProposition != "" {
		sb.WriteString("\nValue proposition: " + *profile.ValueProposition)
	}
	if len(profile.PostIdeas) > 0 {
		sb.WriteString("\nOwner's post ideas: " + strings.Join(profile.PostIdeas, "; "))
	}
	return sb.String()
}

func platformList(platforms []models.Platform) string {
	if len(platforms) == 0 {
		return "facebook, instagram, linkedin, tiktok"
	}
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
