// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package strategy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"socialstudio/internal/ai"
)

// ScanResult is the brand information extracted from a website during
// onboarding. Empty fields mean the site did not reveal them; the user
// reviews and completes the form either way.
type ScanResult struct {
	Name                string   `json:"name"`
	Industry            string   `json:"industry"`
	TargetAudience      string   `json:"target_audience"`
	Tone                string   `json:"tone"`
	BusinessDescription string   `json:"business_description"`
	ValueProposition    string   `json:"value_proposition"`
	ContactEmail        string   `json:"contact_email"`
	Phone               string   `json:"phone"`
	Address             string   `json:"address"`
	PostIdeas           []string `json:"post_ideas"`
}

const scanSystemPrompt = `You extract brand information from website text.
Return ONLY a JSON object with fields: name, industry, target_audience,
tone (one of: professional, funny, inspirational, edgy),
business_description, value_proposition, contact_email, phone, address,
post_ideas (array of 3-5 content ideas based on what the business does).
Use an empty string for anything the text does not reveal.`

// Scanner scans brand websites during onboarding.
type Scanner struct {
	gen    Generator
	client *http.Client
}

// NewScanner creates a Scanner over the given generator.
func NewScanner(gen Generator) *Scanner {
	return &Scanner{
		gen:    gen,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

// Scan fetches the website and extracts brand fields from its text.
func (s *Scanner) Scan(ctx context.Context, websiteURL string) (*ScanResult, error) {
	text, err := s.fetchText(ctx, websiteURL)
	if err != nil {
		return nil, fmt.Errorf("fetch website: %w", err)
	}

	raw, err := s.gen.GenerateJSON(ctx, scanSystemPrompt, "WEBSITE TEXT:\n"+text)
	if err != nil {
		return nil, fmt.Errorf("analyze website: %w", err)
	}
	res, ok := ai.DecodeJSON(raw, ScanResult{})
	if !ok {
		return nil, fmt.Errorf("analyze website: unparseable model output")
	}
	return &res, nil
}

var (
	tagStripper    = regexp.MustCompile(`(?s)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	markupStripper = regexp.MustCompile(`<[^>]+>`)
	spaceCollapser = regexp.MustCompile(`\s+`)
)

// fetchText downloads the page and reduces it to plain text, capped so a
// heavy page does not overflow the model's context.
func (s *Scanner) fetchText(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "socialstudio-brand-scan/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", err
	}

	text := tagStripper.ReplaceAllString(string(body), " ")
	text = markupStripper.ReplaceAllString(text, " ")
	text = spaceCollapser.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if len(text) > 12000 {
		text = text[:12000]
	}
	if text == "" {
		return "", fmt.Errorf("page had no readable text")
	}
	return text, nil
}
