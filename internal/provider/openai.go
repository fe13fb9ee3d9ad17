// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// API endpoints. Package-level vars for test substitution.
var (
	openaiChatURL   = "https://api.openai.com/v1/chat/completions"
	openaiImagesURL = "https://api.openai.com/v1/images/generations"
)

const (
	openaiTextModel   = "gpt-4o-mini"
	openaiVisionModel = "gpt-4o"
	openaiImageModel  = "dall-e-3"
)

// OpenAI calls the OpenAI chat-completions and image-generation APIs.
type OpenAI struct {
	APIKey string
	Client *http.Client
}

// NewOpenAI returns an OpenAI provider. A nil client selects the package
// default with its request timeout.
func NewOpenAI(apiKey string, client *http.Client) *OpenAI {
	return &OpenAI{APIKey: apiKey, Client: orDefault(client)}
}

// Name returns the provider identifier.
func (o *OpenAI) Name() string { return "openai" }

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateText sends a chat completion request, prepending systemPrompt as a
// system message when non-empty.
func (o *OpenAI) GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error) {
	var messages []chatMessage
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	req := chatRequest{
		Model:       openaiTextModel,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	var resp chatResponse
	if err := o.post(ctx, openaiChatURL, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errf(o.Name(), "empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// openaiSize maps an aspect ratio to the closest DALL-E size string.
func openaiSize(aspectRatio string) string {
	switch aspectRatio {
	case "4:3", "16:9":
		return "1792x1024"
	case "3:4", "9:16":
		return "1024x1792"
	default:
		return "1024x1024"
	}
}

type imageResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// GenerateImage renders one image with DALL-E and returns its URL. The model
// and negativePrompt parameters are ignored; DALL-E supports neither.
func (o *OpenAI) GenerateImage(ctx context.Context, prompt, aspectRatio, model, negativePrompt string) (string, error) {
	req := map[string]any{
		"model":           openaiImageModel,
		"prompt":          prompt,
		"n":               1,
		"size":            openaiSize(aspectRatio),
		"quality":         "standard",
		"response_format": "url",
	}

	var resp imageResponse
	if err := o.post(ctx, openaiImagesURL, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errf(o.Name(), "image response contains no URL")
	}
	return resp.Data[0].URL, nil
}

// AnalyzeImage sends the image inline as a data URI to the vision model.
func (o *OpenAI) AnalyzeImage(ctx context.Context, imageBase64, mimeType, systemPrompt, userPrompt string) (string, error) {
	req := chatRequest{
		Model: openaiVisionModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []map[string]any{
				{"type": "text", "text": userPrompt},
				{"type": "image_url", "image_url": map[string]string{
					"url": fmt.Sprintf("data:%s;base64,%s", mimeType, imageBase64),
				}},
			}},
		},
		MaxTokens: 2048,
	}

	var resp chatResponse
	if err := o.post(ctx, openaiChatURL, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errf(o.Name(), "empty vision response")
	}
	return resp.Choices[0].Message.Content, nil
}

// post marshals body, issues the request with auth headers, and decodes the
// JSON response into out.
func (o *OpenAI) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errf(o.Name(), "marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errf(o.Name(), "creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return errf(o.Name(), "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return errf(o.Name(), "HTTP %d: %s", resp.StatusCode, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errf(o.Name(), "decoding response: %v", err)
	}
	return nil
}
