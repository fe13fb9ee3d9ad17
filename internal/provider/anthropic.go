// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// anthropicMessagesURL is the Claude Messages API endpoint. Package-level
// var for test substitution.
var anthropicMessagesURL = "https://api.anthropic.com/v1/messages"

const (
	anthropicModel   = "claude-3-5-sonnet-20241022"
	anthropicVersion = "2023-06-01"
)

// Anthropic calls the Claude Messages API. It supports text generation and
// image analysis; image generation is not a Claude capability.
type Anthropic struct {
	APIKey string
	Client *http.Client
}

// NewAnthropic returns an Anthropic provider. A nil client selects the
// package default with its request timeout.
func NewAnthropic(apiKey string, client *http.Client) *Anthropic {
	return &Anthropic{APIKey: apiKey, Client: orDefault(client)}
}

// Name returns the provider identifier.
func (a *Anthropic) Name() string { return "anthropic" }

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
	System    string             `json:"system,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateText sends a single-turn message, passing systemPrompt through the
// dedicated system field when non-empty.
func (a *Anthropic) GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error) {
	req := anthropicRequest{
		Model:     anthropicModel,
		MaxTokens: 4096,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
		System:    systemPrompt,
	}
	return a.send(ctx, req)
}

// GenerateImage always fails: Claude has no image-generation capability.
func (a *Anthropic) GenerateImage(ctx context.Context, prompt, aspectRatio, model, negativePrompt string) (string, error) {
	return "", errf(a.Name(), "image generation not supported")
}

// AnalyzeImage sends the image as a base64 content block followed by the
// user prompt.
func (a *Anthropic) AnalyzeImage(ctx context.Context, imageBase64, mimeType, systemPrompt, userPrompt string) (string, error) {
	content := []map[string]any{
		{
			"type": "image",
			"source": map[string]string{
				"type":       "base64",
				"media_type": mimeType,
				"data":       imageBase64,
			},
		},
		{"type": "text", "text": userPrompt},
	}
	req := anthropicRequest{
		Model:     anthropicModel,
		MaxTokens: 2048,
		Messages:  []anthropicMessage{{Role: "user", Content: content}},
		System:    systemPrompt,
	}
	return a.send(ctx, req)
}

// send posts the request and returns the first text block of the response.
func (a *Anthropic) send(ctx context.Context, body anthropicRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", errf(a.Name(), "marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(payload))
	if err != nil {
		return "", errf(a.Name(), "creating request: %v", err)
	}
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Client.Do(req)
	if err != nil {
		return "", errf(a.Name(), "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", errf(a.Name(), "HTTP %d: %s", resp.StatusCode, msg)
	}

	var decoded anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", errf(a.Name(), "decoding response: %v", err)
	}

	for _, block := range decoded.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", errf(a.Name(), "empty message response")
}
