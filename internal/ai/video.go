// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
)

// VideoRequest describes a single video generation call. Video models are
// long-running: StartVideo submits the request and returns an operation
// handle; the caller polls PollVideo until the operation is done, then
// fetches the result with FetchVideo.
type VideoRequest struct {
	Prompt      string
	AspectRatio string // "16:9" or "9:16"
	Resolution  string // e.g. "720p"
}

// VideoOperation is the state of a long-running video generation.
type VideoOperation struct {
	Name        string // provider-side operation handle
	Done        bool
	DownloadURI string // set once Done, empty if the run produced nothing
}

// VideoGenerator is an optional interface for providers that can generate
// video. Only Gemini (Veo) implements it today.
type VideoGenerator interface {
	// StartVideo submits a generation request and returns the operation handle.
	StartVideo(ctx context.Context, req VideoRequest) (*VideoOperation, error)

	// PollVideo re-checks a previously started operation.
	PollVideo(ctx context.Context, op *VideoOperation) (*VideoOperation, error)

	// FetchVideo downloads the finished video from its download URI.
	FetchVideo(ctx context.Context, uri string) ([]byte, string, error)
}

// VideoProvider returns the active provider as a VideoGenerator, or an
// error if the active provider cannot generate video.
func (r *Registry) VideoProvider() (VideoGenerator, error) {
	p, err := r.Active()
	if err != nil {
		return nil, err
	}

	vg, ok := p.(VideoGenerator)
	if !ok {
		return nil, fmt.Errorf("ai: provider %q does not support video generation", p.Name())
	}
	return vg, nil
}

// SupportsVideoGeneration returns true if the active provider can generate video.
func (r *Registry) SupportsVideoGeneration() bool {
	p, err := r.Active()
	if err != nil {
		return false
	}
	_, ok := p.(VideoGenerator)
	return ok
}
