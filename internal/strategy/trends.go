// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package strategy

import (
	"context"
	"fmt"

	"socialstudio/internal/ai"
	"socialstudio/internal/models"
)

// Trend is a topic currently moving in the brand's industry, with a short
// note on why it matters for this brand.
type Trend struct {
	Topic string `json:"topic"`
	Why   string `json:"why"`
}

const trendsSystemPrompt = `You are a social media trend analyst. List
topics currently trending in the given industry that a small business
could post about this week. Return ONLY a JSON array of objects with
fields: topic (string), why (one sentence on why it fits this brand).
Return at most 5 items.`

// Trends asks the model for industry trends relevant to the profile.
// Results are cached by the caller; every call here hits the model.
func (p *Planner) Trends(ctx context.Context, profile *models.BrandProfile) ([]Trend, error) {
	raw, err := p.gen.GenerateJSON(ctx, trendsSystemPrompt, brandContext(profile))
	if err != nil {
		return nil, fmt.Errorf("fetch trends: %w", err)
	}

	trends, ok := ai.DecodeJSON(raw, []Trend{})
	if !ok {
		return nil, fmt.Errorf("fetch trends: %w", ErrUnusablePlan)
	}
	if len(trends) > 5 {
		trends = trends[:5]
	}
	return trends, nil
}
