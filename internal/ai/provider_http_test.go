// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// provider_http_test.go exercises each provider's HTTP wire format against
// local httptest servers: request shape, auth headers, and response parsing.
package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeminiGenerateText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []geminiCandidate{
				{Content: geminiContent{Parts: []geminiPart{{Text: "generated text"}}}},
			},
		})
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "test-key", Model: "gemini-test", BaseURL: srv.URL})

	out, err := p.Generate(context.Background(), "be brief", "say hi")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if out != "generated text" {
		t.Errorf("unexpected output %q", out)
	}
	if gotPath != "/v1beta/models/gemini-test:generateContent" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("API key header not sent, got %q", gotKey)
	}
	if gotBody.SystemInstruction == nil || gotBody.SystemInstruction.Parts[0].Text != "be brief" {
		t.Error("system instruction not forwarded")
	}
}

func TestGeminiGenerateJSONSetsMIMEType(t *testing.T) {
	var gotBody geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []geminiCandidate{
				{Content: geminiContent{Parts: []geminiPart{{Text: `{"a":1}`}}}},
			},
		})
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})

	if _, err := p.GenerateJSON(context.Background(), "sys", "user"); err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}
	if gotBody.GenerationConfig == nil || gotBody.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Error("responseMimeType not set for JSON generation")
	}
}

func TestGeminiGenerateImageWithReferences(t *testing.T) {
	imgData := []byte{0x89, 0x50, 0x4e, 0x47}
	var gotBody geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []geminiCandidate{
				{Content: geminiContent{Parts: []geminiPart{
					{InlineData: &geminiInlineData{
						MIMEType: "image/png",
						Data:     base64.StdEncoding.EncodeToString(imgData),
					}},
				}}},
			},
		})
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", ImageModel: "img-model", BaseURL: srv.URL})

	res, err := p.GenerateImage(context.Background(), ImageRequest{
		Prompt:      "a studio scene",
		AspectRatio: "1:1",
		References: []ReferenceImage{
			{Data: []byte("logo"), MIMEType: "image/png"},
			{Data: []byte("style"), MIMEType: "image/jpeg"},
		},
	})
	if err != nil {
		t.Fatalf("GenerateImage failed: %v", err)
	}

	if string(res.Data) != string(imgData) {
		t.Error("image bytes not decoded from base64")
	}

	// Reference parts must precede the prompt part.
	parts := gotBody.Contents[0].Parts
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts (2 refs + prompt), got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[1].InlineData == nil {
		t.Error("reference images not attached as inline data")
	}
	if parts[2].Text != "a studio scene" {
		t.Errorf("prompt part missing, got %+v", parts[2])
	}
	if gotBody.GenerationConfig.ImageConfig == nil || gotBody.GenerationConfig.ImageConfig.AspectRatio != "1:1" {
		t.Error("aspect ratio not forwarded")
	}
}

func TestGeminiImageRequiresModel(t *testing.T) {
	p := newGemini(ProviderConfig{APIKey: "k"})
	if _, err := p.GenerateImage(context.Background(), ImageRequest{Prompt: "x"}); err == nil {
		t.Fatal("expected error without configured image model")
	}
}

func TestGeminiVideoStartAndPoll(t *testing.T) {
	polls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(geminiOperation{Name: "operations/op-123"})
		case r.URL.Path == "/v1beta/operations/op-123":
			polls++
			op := geminiOperation{Name: "operations/op-123"}
			if polls >= 3 {
				op.Done = true
				op.Response = &geminiOperationResponse{}
				op.Response.GenerateVideoResponse.GeneratedSamples = []geminiVideoSample{{}}
				op.Response.GenerateVideoResponse.GeneratedSamples[0].Video.URI = "https://dl.example/video"
			}
			json.NewEncoder(w).Encode(op)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", VideoModel: "veo-test", BaseURL: srv.URL})

	op, err := p.StartVideo(context.Background(), VideoRequest{Prompt: "cinematic", AspectRatio: "16:9", Resolution: "720p"})
	if err != nil {
		t.Fatalf("StartVideo failed: %v", err)
	}
	if op.Done {
		t.Fatal("fresh operation should not be done")
	}

	for i := 0; i < 3; i++ {
		op, err = p.PollVideo(context.Background(), op)
		if err != nil {
			t.Fatalf("PollVideo failed: %v", err)
		}
	}

	if !op.Done {
		t.Fatal("operation should be done after three polls")
	}
	if op.DownloadURI != "https://dl.example/video" {
		t.Errorf("download URI not extracted, got %q", op.DownloadURI)
	}
}

func TestGeminiVideoAuthorizationSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"message": "Requested entity was not found."}}`))
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", VideoModel: "veo-test", BaseURL: srv.URL})

	_, err := p.StartVideo(context.Background(), VideoRequest{Prompt: "x"})
	if !errors.Is(err, ErrAuthorizationRequired) {
		t.Fatalf("expected ErrAuthorizationRequired, got %v", err)
	}
}

func TestGeminiFetchVideoAppendsKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "video/mp4")
		w.Write([]byte("mp4-bytes"))
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "secret-key"})

	data, mime, err := p.FetchVideo(context.Background(), srv.URL+"/files/video?alt=media")
	if err != nil {
		t.Fatalf("FetchVideo failed: %v", err)
	}
	if gotKey != "secret-key" {
		t.Errorf("API key not appended to download URI, got %q", gotKey)
	}
	if mime != "video/mp4" || string(data) != "mp4-bytes" {
		t.Errorf("unexpected payload %q %q", mime, data)
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(openAIResponse{
			Choices: []openAIChoice{{Message: openAIMessage{Role: "assistant", Content: "hi"}}},
		})
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "sk-test", Model: "gpt-test", BaseURL: srv.URL})

	out, err := p.Generate(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "hi" {
		t.Errorf("unexpected output %q", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("bearer auth not sent, got %q", gotAuth)
	}
}

func TestOpenAIGenerateImage(t *testing.T) {
	imgData := []byte("png-bytes")
	var gotReq openAIImageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(imgData)}},
		})
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", ImageModel: "dall-e-3", BaseURL: srv.URL})

	res, err := p.GenerateImage(context.Background(), ImageRequest{Prompt: "x", AspectRatio: "9:16"})
	if err != nil {
		t.Fatalf("GenerateImage failed: %v", err)
	}
	if string(res.Data) != string(imgData) {
		t.Error("image bytes not decoded")
	}
	if gotReq.Size != "1024x1792" {
		t.Errorf("vertical aspect should map to 1024x1792, got %s", gotReq.Size)
	}
	if gotReq.ResponseFormat != "b64_json" {
		t.Errorf("expected b64_json response format, got %s", gotReq.ResponseFormat)
	}
}

func TestClaudeGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") == "" || r.Header.Get("anthropic-version") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(claudeResponse{
			Content: []claudeContentBlock{{Type: "text", Text: "claude says hi"}},
		})
	}))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", Model: "claude-test", BaseURL: srv.URL})

	out, err := p.Generate(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "claude says hi" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestProviderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestOpenAIModerationFlagged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{
				"flagged":    true,
				"categories": map[string]bool{"violence": true, "hate/threatening": true, "self_harm": false},
			}},
		})
	}))
	defer srv.Close()

	m := newOpenAIModerator("k", srv.URL)

	res, err := m.CheckSafety(context.Background(), "bad prompt")
	if err != nil {
		t.Fatalf("CheckSafety failed: %v", err)
	}
	if res.Safe {
		t.Error("expected flagged prompt to be unsafe")
	}
	if len(res.Categories) != 2 {
		t.Errorf("expected 2 flagged categories, got %v", res.Categories)
	}
}

func TestMistralModerationSafe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"categories": map[string]bool{"violence": false}}},
		})
	}))
	defer srv.Close()

	m := newMistralModerator("k", srv.URL)

	res, err := m.CheckSafety(context.Background(), "fine prompt")
	if err != nil {
		t.Fatalf("CheckSafety failed: %v", err)
	}
	if !res.Safe {
		t.Error("expected unflagged prompt to be safe")
	}
}
