// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
)

// ReferenceImage is a binary style reference (or logo) passed alongside an
// image generation prompt so the model can match the brand's look.
type ReferenceImage struct {
	Data     []byte
	MIMEType string // e.g. "image/png"
}

// ImageRequest describes a single image generation call.
type ImageRequest struct {
	Prompt      string
	AspectRatio string           // "1:1", "4:3", "9:16", "16:9"
	References  []ReferenceImage // 0-3 reference images; providers may ignore them
}

// ImageResult is the raw output of an image generation call.
type ImageResult struct {
	Data     []byte
	MIMEType string
}

// ImageGenerator is an optional interface that AI providers can implement
// to support image generation. Not all providers have this capability
// (Claude and Mistral are text-only).
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error)
}

// GenerateImage calls the active provider's image generation if supported.
// Returns an error if the active provider does not implement ImageGenerator.
func (r *Registry) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	p, err := r.Active()
	if err != nil {
		return nil, err
	}

	ig, ok := p.(ImageGenerator)
	if !ok {
		return nil, fmt.Errorf("ai: provider %q does not support image generation", p.Name())
	}

	return ig.GenerateImage(ctx, req)
}

// SupportsImageGeneration returns true if the active provider can generate images.
func (r *Registry) SupportsImageGeneration() bool {
	p, err := r.Active()
	if err != nil {
		return false
	}
	_, ok := p.(ImageGenerator)
	return ok
}
