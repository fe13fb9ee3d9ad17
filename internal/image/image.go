// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package image renders illustrations for content items through an image
// provider and saves the results to disk. Batch operations tolerate
// per-item failures: one broken render never aborts a carousel.
package image

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mkweon/content-engine/internal/provider"
	"github.com/mkweon/content-engine/pkg/types"
)

// Generator is the provider capability the renderer needs. Satisfied by
// provider.Provider; tests supply a mock.
type Generator interface {
	Name() string
	GenerateImage(ctx context.Context, prompt, aspectRatio, model, negativePrompt string) (string, error)
}

// newGenerator builds the provider for a render. Package-level var so tests
// can avoid real API calls.
var newGenerator = func(name, apiKey string) Generator {
	return provider.ForImage(name, apiKey, nil)
}

// Options carry the provider selection shared by single and batch renders.
type Options struct {
	APIKey         string
	Provider       string
	Model          string
	AspectRatio    string
	NegativePrompt string
}

// Generate renders one image for the request. The final prompt is the
// concept, with the style prompt appended when present.
func Generate(ctx context.Context, req types.ImageRequest, opts Options) (*types.GeneratedImage, error) {
	if isBlank(req.ImageConcept) {
		return nil, errors.New("image concept is required")
	}
	if opts.APIKey == "" {
		return nil, errors.New("API key is not configured")
	}

	aspectRatio := opts.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}

	finalPrompt := req.ImageConcept
	if req.StylePrompt != "" {
		finalPrompt = fmt.Sprintf("%s\n\nStyle: %s", req.ImageConcept, req.StylePrompt)
	}

	gen := newGenerator(opts.Provider, opts.APIKey)
	url, err := gen.GenerateImage(ctx, finalPrompt, aspectRatio, opts.Model, opts.NegativePrompt)
	if err != nil {
		return nil, fmt.Errorf("generating image: %w", err)
	}

	width, height := dimensions(aspectRatio)
	return &types.GeneratedImage{
		ID:        uuid.NewString(),
		ContentID: req.ContentID,
		URL:       url,
		Width:     width,
		Height:    height,
	}, nil
}

// dimensions maps an aspect ratio to the pixel size recorded on the result.
// Unrecognized ratios get the square default.
func dimensions(aspectRatio string) (int, int) {
	switch aspectRatio {
	case "4:3":
		return 1024, 768
	case "3:4":
		return 768, 1024
	case "16:9":
		return 1024, 576
	case "9:16":
		return 576, 1024
	default:
		return 1024, 1024
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
