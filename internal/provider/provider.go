// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider presents a uniform capability interface over the
// heterogeneous generation back-ends (OpenAI, Anthropic, Google). Each
// back-end implements the subset of capabilities it supports and fails fast
// with a clear error for the rest. There is no automatic retry at this
// layer; every failure surfaces as a *ProviderError naming the back-end.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Provider exposes the three generation capabilities. GenerateImage returns
// either a remote URL or an embedded data URI; callers must handle both.
type Provider interface {
	Name() string
	GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error)
	GenerateImage(ctx context.Context, prompt, aspectRatio, model, negativePrompt string) (string, error)
	AnalyzeImage(ctx context.Context, imageBase64, mimeType, systemPrompt, userPrompt string) (string, error)
}

// ProviderError reports a failed provider call: transport failure,
// non-success status, unparsable response, or an unsupported capability.
type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// errf builds a *ProviderError with a formatted message.
func errf(provider, format string, args ...any) *ProviderError {
	return &ProviderError{Provider: provider, Message: fmt.Sprintf(format, args...)}
}

// defaultTimeout bounds provider requests when the caller does not inject a
// client. The upstream design leaves requests unbounded; a generation call
// that never returns would otherwise block its task forever.
const defaultTimeout = 120 * time.Second

// defaultClient is shared by providers constructed without an explicit client.
var defaultClient = &http.Client{Timeout: defaultTimeout}

// ForText returns the provider used for text generation. Unrecognized names
// fall back to OpenAI, the documented text default.
func ForText(name, apiKey string, client *http.Client) Provider {
	switch name {
	case "anthropic":
		return NewAnthropic(apiKey, client)
	case "google", "gemini":
		return NewGoogle(apiKey, client)
	default:
		return NewOpenAI(apiKey, client)
	}
}

// ForImage returns the provider used for image generation. Unrecognized
// names fall back to Google, the documented image default.
func ForImage(name, apiKey string, client *http.Client) Provider {
	switch name {
	case "openai":
		return NewOpenAI(apiKey, client)
	case "anthropic":
		// Recognized but fails fast on GenerateImage.
		return NewAnthropic(apiKey, client)
	default:
		return NewGoogle(apiKey, client)
	}
}

// ForVision returns the provider used for image analysis. Unrecognized names
// fall back to OpenAI.
func ForVision(name, apiKey string, client *http.Client) Provider {
	return ForText(name, apiKey, client)
}

func orDefault(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return defaultClient
}
