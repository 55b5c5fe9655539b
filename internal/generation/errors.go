// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"errors"
	"fmt"

	"socialstudio/internal/credits"
)

var (
	// ErrQuotaExceeded is returned when the account cannot afford the
	// requested generation. Checked before any model call is made. Wraps
	// credits.ErrInsufficientCredits so callers can match either sentinel.
	ErrQuotaExceeded = fmt.Errorf("generation: quota exceeded: %w", credits.ErrInsufficientCredits)

	// ErrGenerationInFlight is returned when a generation is requested
	// for a post that already has one running.
	ErrGenerationInFlight = errors.New("generation: already in progress for this post")

	// ErrGenerationTimedOut is returned when a video operation does not
	// complete within the configured polling window.
	ErrGenerationTimedOut = errors.New("generation: timed out waiting for video")

	// ErrNoMediaReturned is returned when the provider reports success
	// but the response carries no usable payload.
	ErrNoMediaReturned = errors.New("generation: provider returned no media")

	// ErrNoHistory is returned when variant navigation is requested on a
	// post that has never had an AI asset produced.
	ErrNoHistory = errors.New("generation: post has no variant history")
)
