// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// googleAPIBase is the Generative Language API root. Package-level var for
// test substitution.
var googleAPIBase = "https://generativelanguage.googleapis.com/v1beta"

const (
	googleTextModel    = "gemini-2.0-flash"
	googleImageDefault = "imagen-4.0-generate-001"

	// Gemini has no dedicated system field in this API version; the system
	// prompt is emulated as an opening user turn plus this acknowledgment.
	googleSystemAck = "알겠습니다. 지침을 따르겠습니다."
)

// Google calls the Gemini text/vision APIs and the Imagen image API.
type Google struct {
	APIKey string
	Client *http.Client
}

// NewGoogle returns a Google provider. A nil client selects the package
// default with its request timeout.
func NewGoogle(apiKey string, client *http.Client) *Google {
	return &Google{APIKey: apiKey, Client: orDefault(client)}
}

// Name returns the provider identifier.
func (g *Google) Name() string { return "google" }

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig map[string]any  `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateText sends a Gemini generateContent request with emulated system
// instructions.
func (g *Google) GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error) {
	var contents []geminiContent
	if systemPrompt != "" {
		contents = append(contents,
			geminiContent{Role: "user", Parts: []geminiPart{{Text: systemPrompt}}},
			geminiContent{Role: "model", Parts: []geminiPart{{Text: googleSystemAck}}},
		)
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: prompt}}})

	req := geminiRequest{
		Contents:         contents,
		GenerationConfig: map[string]any{"temperature": 0.7, "maxOutputTokens": 4096},
	}
	return g.generateContent(ctx, googleTextModel, req)
}

// imagenResponse covers both response shapes the Imagen API returns.
type imagenResponse struct {
	GeneratedImages []struct {
		Image struct {
			ImageBytes string `json:"imageBytes"`
		} `json:"image"`
	} `json:"generatedImages"`
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

// GenerateImage renders one image and returns it as a data URI. Imagen
// models go through the predict endpoint; gemini models use native image
// output. An empty or unknown model falls back to the Imagen default.
func (g *Google) GenerateImage(ctx context.Context, prompt, aspectRatio, model, negativePrompt string) (string, error) {
	if strings.HasPrefix(model, "gemini-") {
		return g.generateImageNative(ctx, model, prompt)
	}
	if !strings.HasPrefix(model, "imagen-") {
		model = googleImageDefault
	}
	return g.generateImagePredict(ctx, model, prompt, aspectRatio, negativePrompt)
}

func (g *Google) generateImagePredict(ctx context.Context, model, prompt, aspectRatio, negativePrompt string) (string, error) {
	parameters := map[string]any{
		"sampleCount": 1,
		"aspectRatio": aspectRatio,
	}
	if negativePrompt != "" {
		parameters["negativePrompt"] = negativePrompt
	}
	body := map[string]any{
		"instances":  []map[string]string{{"prompt": prompt}},
		"parameters": parameters,
	}

	url := fmt.Sprintf("%s/models/%s:predict?key=%s", googleAPIBase, model, g.APIKey)

	var resp imagenResponse
	if err := g.post(ctx, url, body, &resp); err != nil {
		return "", err
	}

	if len(resp.GeneratedImages) > 0 && resp.GeneratedImages[0].Image.ImageBytes != "" {
		return "data:image/png;base64," + resp.GeneratedImages[0].Image.ImageBytes, nil
	}
	if len(resp.Predictions) > 0 && resp.Predictions[0].BytesBase64Encoded != "" {
		return "data:image/png;base64," + resp.Predictions[0].BytesBase64Encoded, nil
	}
	return "", errf(g.Name(), "%s returned no image", model)
}

func (g *Google) generateImageNative(ctx context.Context, model, prompt string) (string, error) {
	req := geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: map[string]any{"responseModalities": []string{"TEXT", "IMAGE"}},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", googleAPIBase, model, g.APIKey)

	var resp geminiResponse
	if err := g.post(ctx, url, req, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", errf(g.Name(), "%s (%s)", resp.Error.Message, resp.Error.Status)
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil {
				return fmt.Sprintf("data:%s;base64,%s", part.InlineData.MimeType, part.InlineData.Data), nil
			}
		}
	}
	return "", errf(g.Name(), "%s response contains no image", model)
}

// AnalyzeImage sends the image inline to the Gemini vision model.
func (g *Google) AnalyzeImage(ctx context.Context, imageBase64, mimeType, systemPrompt, userPrompt string) (string, error) {
	contents := []geminiContent{
		{Role: "user", Parts: []geminiPart{{Text: systemPrompt}}},
		{Role: "model", Parts: []geminiPart{{Text: googleSystemAck}}},
		{Role: "user", Parts: []geminiPart{
			{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageBase64}},
			{Text: userPrompt},
		}},
	}

	req := geminiRequest{
		Contents:         contents,
		GenerationConfig: map[string]any{"temperature": 0.7, "maxOutputTokens": 2048},
	}
	return g.generateContent(ctx, googleTextModel, req)
}

// generateContent posts to the model's generateContent endpoint and returns
// the first text part of the first candidate.
func (g *Google) generateContent(ctx context.Context, model string, body geminiRequest) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", googleAPIBase, model, g.APIKey)

	var resp geminiResponse
	if err := g.post(ctx, url, body, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", errf(g.Name(), "%s (%s)", resp.Error.Message, resp.Error.Status)
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", errf(g.Name(), "empty generateContent response")
}

func (g *Google) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errf(g.Name(), "marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errf(g.Name(), "creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return errf(g.Name(), "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return errf(g.Name(), "HTTP %d: %s", resp.StatusCode, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errf(g.Name(), "decoding response: %v", err)
	}
	return nil
}
