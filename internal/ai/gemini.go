// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// geminiProvider implements Provider, JSONGenerator, ImageGenerator, and
// VideoGenerator using the Google Gemini REST API. Text and image requests
// go through POST /v1beta/models/{model}:generateContent; video requests
// use the long-running predictLongRunning endpoint (Veo) and are polled
// through the operations resource.
type geminiProvider struct {
	config ProviderConfig
	client *http.Client
}

// newGemini creates a new Google Gemini provider.
func newGemini(cfg ProviderConfig) *geminiProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	return &geminiProvider{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *geminiProvider) Name() string { return "gemini" }

// Generate sends a generateContent request using the default text model.
func (p *geminiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return p.generateText(ctx, systemPrompt, userPrompt, "")
}

// GenerateJSON forces JSON output via the responseMimeType generation config.
func (p *geminiProvider) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return p.generateText(ctx, systemPrompt, userPrompt, "application/json")
}

func (p *geminiProvider) generateText(ctx context.Context, systemPrompt, userPrompt, responseMIME string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: userPrompt}}},
		},
	}
	if systemPrompt != "" {
		body.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		}
	}
	if responseMIME != "" {
		body.GenerationConfig = &geminiGenerationConfig{ResponseMIMEType: responseMIME}
	}

	respBody, err := p.post(ctx, p.modelURL(p.config.Model, "generateContent"), body)
	if err != nil {
		return "", err
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("gemini unmarshal: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}

	// Extract text from the first candidate's parts.
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}

	return "", fmt.Errorf("gemini: no text in response")
}

// GenerateImage creates an image using Gemini's native generateContent API
// with responseModalities set to IMAGE. Reference images (style references,
// logo) are attached as inline data parts ahead of the prompt so the model
// conditions its output on them.
func (p *geminiProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	model := p.config.ImageModel
	if model == "" {
		return nil, fmt.Errorf("gemini: image generation requires GEMINI_MODEL_IMAGE to be set")
	}

	parts := make([]geminiPart, 0, len(req.References)+1)
	for _, ref := range req.References {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MIMEType: ref.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(ref.Data),
			},
		})
	}
	parts = append(parts, geminiPart{Text: req.Prompt})

	body := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}
	if req.AspectRatio != "" {
		body.GenerationConfig.ImageConfig = &geminiImageConfig{AspectRatio: req.AspectRatio}
	}

	respBody, err := p.post(ctx, p.modelURL(model, "generateContent"), body)
	if err != nil {
		return nil, err
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("gemini image unmarshal: %w", err)
	}

	// Extract image data from the response parts.
	for _, c := range result.Candidates {
		for _, part := range c.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				imgBytes, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("gemini image decode base64: %w", err)
				}
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return &ImageResult{Data: imgBytes, MIMEType: mime}, nil
			}
		}
	}

	return nil, fmt.Errorf("gemini image: no image data in response")
}

// StartVideo submits a Veo generation request and returns the long-running
// operation handle to poll.
func (p *geminiProvider) StartVideo(ctx context.Context, req VideoRequest) (*VideoOperation, error) {
	model := p.config.VideoModel
	if model == "" {
		return nil, fmt.Errorf("gemini: video generation requires GEMINI_MODEL_VIDEO to be set")
	}

	body := geminiVideoRequest{
		Instances: []geminiVideoInstance{{Prompt: req.Prompt}},
		Parameters: geminiVideoParameters{
			AspectRatio: req.AspectRatio,
			Resolution:  req.Resolution,
			SampleCount: 1,
		},
	}

	respBody, err := p.post(ctx, p.modelURL(model, "predictLongRunning"), body)
	if err != nil {
		return nil, err
	}

	var op geminiOperation
	if err := json.Unmarshal(respBody, &op); err != nil {
		return nil, fmt.Errorf("gemini video unmarshal: %w", err)
	}
	if op.Name == "" {
		return nil, fmt.Errorf("gemini video: no operation name returned")
	}

	return p.toVideoOperation(&op), nil
}

// PollVideo re-checks a running Veo operation by name.
func (p *geminiProvider) PollVideo(ctx context.Context, op *VideoOperation) (*VideoOperation, error) {
	url := fmt.Sprintf("%s/v1beta/%s", p.config.BaseURL, op.Name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini poll request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.config.APIKey)

	respBody, err := p.do(req)
	if err != nil {
		return nil, err
	}

	var raw geminiOperation
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("gemini poll unmarshal: %w", err)
	}
	raw.Name = op.Name

	return p.toVideoOperation(&raw), nil
}

// FetchVideo downloads the finished video. Veo download URIs require the
// API key as a query parameter.
func (p *geminiProvider) FetchVideo(ctx context.Context, uri string) ([]byte, string, error) {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+sep+"key="+p.config.APIKey, nil)
	if err != nil {
		return nil, "", fmt.Errorf("gemini fetch request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("gemini fetch http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("gemini fetch error (status %d)", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("gemini fetch read: %w", err)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "video/mp4"
	}
	return data, mime, nil
}

func (p *geminiProvider) toVideoOperation(raw *geminiOperation) *VideoOperation {
	out := &VideoOperation{Name: raw.Name, Done: raw.Done}
	if raw.Done && raw.Response != nil {
		for _, s := range raw.Response.GenerateVideoResponse.GeneratedSamples {
			if s.Video.URI != "" {
				out.DownloadURI = s.Video.URI
				break
			}
		}
	}
	return out
}

func (p *geminiProvider) modelURL(model, method string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:%s", p.config.BaseURL, model, method)
}

func (p *geminiProvider) post(ctx context.Context, url string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.config.APIKey)

	return p.do(req)
}

func (p *geminiProvider) do(req *http.Request) ([]byte, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// A 404 "Requested entity was not found" on a model endpoint means
		// the key's project has no access to the model (billing not enabled
		// for Veo). Surface it as the re-authorization sentinel.
		if resp.StatusCode == http.StatusNotFound &&
			strings.Contains(string(respBody), "Requested entity was not found") {
			return nil, fmt.Errorf("gemini: %w", ErrAuthorizationRequired)
		}
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// --- Gemini API types ---

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType   string             `json:"responseMimeType,omitempty"`
	ResponseModalities []string           `json:"responseModalities,omitempty"`
	ImageConfig        *geminiImageConfig `json:"imageConfig,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// --- Veo long-running operation types ---

type geminiVideoInstance struct {
	Prompt string `json:"prompt"`
}

type geminiVideoParameters struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
	SampleCount int    `json:"sampleCount"`
}

type geminiVideoRequest struct {
	Instances  []geminiVideoInstance `json:"instances"`
	Parameters geminiVideoParameters `json:"parameters"`
}

type geminiVideoSample struct {
	Video struct {
		URI string `json:"uri"`
	} `json:"video"`
}

type geminiOperationResponse struct {
	GenerateVideoResponse struct {
		GeneratedSamples []geminiVideoSample `json:"generatedSamples"`
	} `json:"generateVideoResponse"`
}

type geminiOperation struct {
	Name     string                   `json:"name"`
	Done     bool                     `json:"done"`
	Response *geminiOperationResponse `json:"response,omitempty"`
}
