// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging normalizes uploaded post images using libvips. Client
// uploads arrive in arbitrary formats, sizes and orientations; social
// feeds want a web-ready WebP at feed resolution with EXIF metadata
// stripped. AI-generated media already comes back at the requested
// resolution and skips this path.
package imaging

import (
	"fmt"
	"log/slog"

	"github.com/davidbyttow/govips/v2/vips"
)

const (
	// feedWidth is the widest rendition any supported platform displays.
	feedWidth = 1080
	// feedQuality balances compression against visible artifacts in
	// photographic content.
	feedQuality = 82
)

// Optimized is the result of one normalization pass, ready for upload.
type Optimized struct {
	Data        []byte
	Width       int
	Height      int
	ContentType string // always "image/webp"
}

// Startup initialises the libvips library. Call once at application start.
// concurrency controls the number of libvips worker threads (0 = auto).
func Startup(concurrency int) {
	cfg := &vips.Config{
		ConcurrencyLevel: concurrency,
		MaxCacheSize:     100,
		MaxCacheMem:      50 * 1024 * 1024, // 50 MB
	}
	vips.LoggingSettings(nil, vips.LogLevelWarning)
	vips.Startup(cfg)
	slog.Info("libvips started", "version", vips.Version)
}

// Shutdown releases libvips resources. Call at application shutdown.
func Shutdown() {
	vips.Shutdown()
}

// Optimize converts an uploaded image into a feed-ready WebP. Images
// wider than the feed width are downscaled; smaller ones keep their
// dimensions to avoid upscaling. EXIF orientation is applied before the
// metadata is stripped.
func Optimize(original []byte) (*Optimized, error) {
	probe, err := vips.NewImageFromBuffer(original)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode failed: %w", err)
	}
	width := probe.Width()
	probe.Close()

	if width > feedWidth {
		width = feedWidth
	}

	img, err := vips.NewThumbnailFromBuffer(original, width, 0, vips.InterestingNone)
	if err != nil {
		return nil, fmt.Errorf("imaging: resize: %w", err)
	}
	defer img.Close()

	if err := img.AutoRotate(); err != nil {
		return nil, fmt.Errorf("imaging: autorotate: %w", err)
	}

	params := vips.NewWebpExportParams()
	params.Quality = feedQuality
	params.Lossless = false
	params.StripMetadata = true

	buf, meta, err := img.ExportWebp(params)
	if err != nil {
		return nil, fmt.Errorf("imaging: export: %w", err)
	}

	return &Optimized{
		Data:        buf,
		Width:       meta.Width,
		Height:      meta.Height,
		ContentType: "image/webp",
	}, nil
}
