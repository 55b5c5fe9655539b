// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generation runs the two-stage media pipeline: a creative brief
// is synthesized from the brand context, turned into a model prompt, and
// rendered into an image or video that is uploaded to object storage. The
// Manager serializes runs per post and the session tracks phase and
// credit accounting.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"socialstudio/internal/ai"
	"socialstudio/internal/brief"
	"socialstudio/internal/models"
)

// MediaGenerator is the slice of the AI registry the renderer needs.
// *ai.Registry satisfies it.
type MediaGenerator interface {
	GenerateImage(ctx context.Context, req ai.ImageRequest) (*ai.ImageResult, error)
	VideoProvider() (ai.VideoGenerator, error)
}

// MediaStore uploads rendered assets and returns their public URL.
// *storage.Client satisfies it.
type MediaStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// RenderRequest carries everything one render run needs. Seed zero is the
// first take; each regeneration bumps it so the brief prompt varies.
type RenderRequest struct {
	Post            *models.SocialPost
	Profile         *models.BrandProfile
	Mode            brief.Mode
	EditInstruction string
	Seed            int
}

// ImagePlan is the prepared half of an image run: the synthesized brief
// compiled into a final prompt plus the loaded style references.
type ImagePlan struct {
	Prompt      string
	AspectRatio string
	References  []ai.ReferenceImage
	Brief       *brief.Brief
	Debug       models.GenerationDebug
}

// VideoPlan is the prepared half of a video run. Video prompts skip the
// brief stage and are composed directly from the post and brand voice.
type VideoPlan struct {
	Prompt      string
	AspectRatio string
	Resolution  string
	Debug       models.GenerationDebug
}

// Rendered is a finished, uploaded asset.
type Rendered struct {
	URL         string
	ContentType string
	Size        int
}

// Renderer executes render plans against the active AI provider.
type Renderer struct {
	gen   MediaGenerator
	store MediaStore
	synth *brief.Synthesizer

	// refs fetches style reference images; nil disables references.
	refs *http.Client

	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewRenderer creates a Renderer. pollInterval and pollTimeout govern the
// video operation loop.
func NewRenderer(gen MediaGenerator, store MediaStore, synth *brief.Synthesizer, pollInterval, pollTimeout time.Duration) *Renderer {
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	if pollTimeout <= 0 {
		pollTimeout = 6 * time.Minute
	}
	return &Renderer{
		gen:          gen,
		store:        store,
		synth:        synth,
		refs:         &http.Client{Timeout: 30 * time.Second},
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// BuildImagePlan synthesizes the creative brief and compiles the final
// image prompt. It never fails on model errors: the brief stage degrades
// to brand defaults and the degradation is recorded in the plan's debug.
func (r *Renderer) BuildImagePlan(ctx context.Context, req RenderRequest) *ImagePlan {
	res := r.synth.Synthesize(ctx, brief.Request{
		PostContent:     req.Post.Content,
		Profile:         req.Profile,
		Platform:        req.Post.Platform,
		Mode:            req.Mode,
		EditInstruction: req.EditInstruction,
		Seed:            req.Seed,
	})

	plan := &ImagePlan{
		Prompt:      brief.ImagePrompt(res.Brief, req.Profile, req.Mode),
		AspectRatio: imageAspectRatio(req.Post.Platform),
		References:  r.loadReferences(ctx, req.Profile),
		Brief:       res.Brief,
	}
	debug := &models.ImageDebug{
		Palette:        res.Brief.Palette,
		MissingContext: res.MissingContext,
	}
	if raw, err := json.Marshal(res.Brief); err == nil {
		debug.Brief = raw
	}
	plan.Debug = models.GenerationDebug{Kind: models.DebugKindImage, Image: debug}
	return plan
}

// ExecuteImagePlan renders the plan and uploads the result.
func (r *Renderer) ExecuteImagePlan(ctx context.Context, accountID uuid.UUID, plan *ImagePlan) (*Rendered, error) {
	res, err := r.gen.GenerateImage(ctx, ai.ImageRequest{
		Prompt:      plan.Prompt,
		AspectRatio: plan.AspectRatio,
		References:  plan.References,
	})
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Data) == 0 {
		return nil, ErrNoMediaReturned
	}

	key := mediaKey(accountID, extensionFor(res.MIMEType))
	url, err := r.store.Upload(ctx, key, res.Data, res.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return &Rendered{URL: url, ContentType: res.MIMEType, Size: len(res.Data)}, nil
}

// BuildVideoPlan compiles the video prompt from the post and brand voice.
func (r *Renderer) BuildVideoPlan(_ context.Context, req RenderRequest) *VideoPlan {
	ratio := videoAspectRatio(req.Post.Platform)
	return &VideoPlan{
		Prompt:      brief.VideoPrompt(req.Post.Content, req.Profile, req.EditInstruction),
		AspectRatio: ratio,
		Resolution:  "720p",
		Debug: models.GenerationDebug{
			Kind: models.DebugKindVideo,
			Video: &models.VideoDebug{
				MissingContext: brief.MissingContext(req.Profile),
				AspectRatio:    ratio,
				Resolution:     "720p",
			},
		},
	}
}

// ExecuteVideoPlan starts the long-running video operation, polls it to
// completion, downloads the result and uploads it to storage. Exceeding
// the poll window returns ErrGenerationTimedOut.
func (r *Renderer) ExecuteVideoPlan(ctx context.Context, accountID uuid.UUID, plan *VideoPlan) (*Rendered, error) {
	vg, err := r.gen.VideoProvider()
	if err != nil {
		return nil, err
	}

	op, err := vg.StartVideo(ctx, ai.VideoRequest{
		Prompt:      plan.Prompt,
		AspectRatio: plan.AspectRatio,
		Resolution:  plan.Resolution,
	})
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(r.pollTimeout)
	for !op.Done {
		if time.Now().After(deadline) {
			return nil, ErrGenerationTimedOut
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.pollInterval):
		}
		op, err = vg.PollVideo(ctx, op)
		if err != nil {
			return nil, err
		}
	}
	if op.DownloadURI == "" {
		return nil, ErrNoMediaReturned
	}

	data, contentType, err := vg.FetchVideo(ctx, op.DownloadURI)
	if err != nil {
		return nil, fmt.Errorf("fetch video: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoMediaReturned
	}
	if contentType == "" {
		contentType = "video/mp4"
	}

	key := mediaKey(accountID, ".mp4")
	url, err := r.store.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}
	return &Rendered{URL: url, ContentType: contentType, Size: len(data)}, nil
}

// loadReferences downloads the profile's logo and style reference images.
// Individual fetch failures are logged and skipped so a dead reference
// URL never blocks generation.
func (r *Renderer) loadReferences(ctx context.Context, profile *models.BrandProfile) []ai.ReferenceImage {
	if r.refs == nil || profile == nil {
		return nil
	}

	urls := make([]string, 0, models.MaxStyleReferences+1)
	if profile.LogoURL != nil && *profile.LogoURL != "" {
		urls = append(urls, *profile.LogoURL)
	}
	urls = append(urls, profile.StyleReferenceURLs...)

	var refs []ai.ReferenceImage
	for _, u := range urls {
		if len(refs) == models.MaxStyleReferences {
			break
		}
		img, err := r.fetchReference(ctx, u)
		if err != nil {
			slog.Warn("skipping style reference", "url", u, "error", err)
			continue
		}
		refs = append(refs, img)
	}
	return refs
}

func (r *Renderer) fetchReference(ctx context.Context, url string) (ai.ReferenceImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ai.ReferenceImage{}, err
	}
	resp, err := r.refs.Do(req)
	if err != nil {
		return ai.ReferenceImage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ai.ReferenceImage{}, fmt.Errorf("status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return ai.ReferenceImage{}, err
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "image/png"
	}
	return ai.ReferenceImage{Data: data, MIMEType: mime}, nil
}

// imageAspectRatio maps a platform to its native image frame.
func imageAspectRatio(p models.Platform) string {
	switch p {
	case models.PlatformTikTok:
		return "9:16"
	case models.PlatformLinkedIn:
		return "4:3"
	default:
		return "1:1"
	}
}

// videoAspectRatio maps a platform to its video frame. Veo only supports
// landscape and portrait.
func videoAspectRatio(p models.Platform) string {
	if p == models.PlatformTikTok {
		return "9:16"
	}
	return "16:9"
}

func mediaKey(accountID uuid.UUID, ext string) string {
	return fmt.Sprintf("media/%s/%s%s", accountID, uuid.New(), ext)
}

func extensionFor(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
